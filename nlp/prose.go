package nlp

import (
	"github.com/jdkato/prose/v2"

	"github.com/Luismorlan/newsdash/model"
)

// ProseAnalyzer tokenizes, segments and tags english text with prose. Each
// call only runs the pipeline stages it needs.
type ProseAnalyzer struct {
	// tagger and entity model, loaded once and shared by every document
	model *prose.Model
}

func NewProseAnalyzer() *ProseAnalyzer {
	return &ProseAnalyzer{model: prose.ModelFromData("en")}
}

func (a *ProseAnalyzer) Tokens(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.UsingModel(a.model),
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, err
	}
	tokens := doc.Tokens()
	res := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		res = append(res, tok.Text)
	}
	return res, nil
}

func (a *ProseAnalyzer) Sentences(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.UsingModel(a.model),
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, err
	}
	sentences := doc.Sentences()
	res := make([]string, 0, len(sentences))
	for _, s := range sentences {
		res = append(res, s.Text)
	}
	return res, nil
}

func (a *ProseAnalyzer) Entities(text string) ([]model.NamedEntity, error) {
	doc, err := prose.NewDocument(text,
		prose.UsingModel(a.model),
		prose.WithSegmentation(false))
	if err != nil {
		return nil, err
	}
	entities := doc.Entities()
	res := make([]model.NamedEntity, 0, len(entities))
	for _, ent := range entities {
		res = append(res, model.NamedEntity{Text: ent.Text, Label: ent.Label})
	}
	return res, nil
}
