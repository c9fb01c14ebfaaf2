package printer

import "github.com/deckgen/deckgen/internal/model"

// Printer knows how to print deck generation information in different
// formats.
type Printer interface {
	PrintTemplateList(templates []model.Template) error
	PrintUpload(upload model.TemplateUpload) error
	PrintAnalysis(analysis model.TemplateAnalysis) error
	PrintGeneration(gen model.Generation) error
	PrintHistory(templates []model.TemplateRecord, generations []model.GenerationRecord) error
	PrintMessage(msg string) error
}
