package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	Logger "github.com/Luismorlan/newsdash/utils/log"
)

const userAgent = "newsdash/1.0"

type HttpClient struct {
	header http.Header

	client *http.Client
}

func NewDefaultHttpClient(timeout time.Duration) *HttpClient {
	return NewHttpClient(http.Header{}, timeout)
}

func NewHttpClient(header http.Header, timeout time.Duration) *HttpClient {
	if header.Get("User-Agent") == "" {
		header.Set("User-Agent", userAgent)
	}
	return &HttpClient{header: header, client: &http.Client{Timeout: timeout}}
}

// Post sends body with the given content type. Non 2XX responses are logged
// and reported as error, the body is already consumed in that case.
func (c *HttpClient) Post(ctx context.Context, uri string, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, body)
	if err != nil {
		return nil, err
	}
	req.Header = c.header.Clone()
	req.Header.Set("Content-Type", contentType)
	return c.do(req)
}

func (c *HttpClient) Get(ctx context.Context, uri string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}
	req.Header = c.header.Clone()
	return c.do(req)
}

func (c *HttpClient) do(req *http.Request) (*http.Response, error) {
	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	if IsNon200HttpResponse(res) {
		MaybeLogNon200HttpError(res)
		res.Body.Close()
		return nil, fmt.Errorf("non-200 http code %d from %s", res.StatusCode, req.URL.Path)
	}

	return res, nil
}

// Log http response if the error code is not 2XX
func MaybeLogNon200HttpError(res *http.Response) {
	if IsNon200HttpResponse(res) {
		Logger.Log.Errorf("non-200 http code: %d", res.StatusCode)
		LogHttpResponseBody(res)
	}
}

func IsNon200HttpResponse(res *http.Response) bool {
	return res.StatusCode >= 300
}

func LogHttpResponseBody(res *http.Response) {
	body, err := io.ReadAll(res.Body)
	if err == nil {
		Logger.Log.Errorln("response body is: ", string(body))
	}
}
