package nlp

import (
	"bytes"
	"context"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pemistahl/lingua-go"

	"github.com/Luismorlan/newsdash/collector/clients"
	Logger "github.com/Luismorlan/newsdash/utils/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Languages the detector can tell apart, news api content languages.
var detectableLanguages = []lingua.Language{
	lingua.Arabic, lingua.Chinese, lingua.Dutch, lingua.English, lingua.French,
	lingua.German, lingua.Hebrew, lingua.Italian, lingua.Bokmal,
	lingua.Portuguese, lingua.Russian, lingua.Spanish, lingua.Swedish,
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error,omitempty"`
}

// LibreTranslator calls a LibreTranslate compatible /translate endpoint. Text
// which is detected to be in the target language already is returned as is.
type LibreTranslator struct {
	endpoint string
	client   *clients.HttpClient
	detector lingua.LanguageDetector
}

func NewLibreTranslator(endpoint string, timeout time.Duration) *LibreTranslator {
	return &LibreTranslator{
		endpoint: endpoint,
		client:   clients.NewDefaultHttpClient(timeout),
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(detectableLanguages...).
			Build(),
	}
}

// DetectLanguage returns the lower-case ISO 639-1 code of text, false when
// no language is reliable enough.
func (t *LibreTranslator) DetectLanguage(text string) (string, bool) {
	lang, ok := t.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}

func (t *LibreTranslator) Translate(ctx context.Context, text string, target string) (string, error) {
	source := "auto"
	if lang, ok := t.DetectLanguage(text); ok {
		if lang == target {
			return text, nil
		}
		source = lang
	}

	body, err := json.Marshal(translateRequest{Q: text, Source: source, Target: target, Format: "text"})
	if err != nil {
		return text, err
	}
	res, err := t.client.Post(ctx, t.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return text, err
	}
	defer res.Body.Close()

	var decoded translateResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return text, err
	}
	if decoded.Error != "" {
		Logger.Log.Errorln("translation api error: ", decoded.Error)
		return text, errTranslation(decoded.Error)
	}
	return decoded.TranslatedText, nil
}

type errTranslation string

func (e errTranslation) Error() string { return "translation api: " + string(e) }
