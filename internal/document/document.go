package document

import (
	"strings"

	"github.com/nguyentantai21042004/meeting-notes/internal/models"
)

const (
	TitleOriginal    = "Original Transcript"
	TitleSpeakers    = "Full Transcript - Grouped by Speaker"
	TitleSummary     = "Summarisation Results"
	TitleTranslation = "Translation Results"

	headingSummary = "Summary"
	headingChunks  = "Summary Chunks"
)

// Section is one titled block of the compiled document.
type Section struct {
	Title string
	Lines []string
}

// Document is the compiled artifact: ordered sections rendered to one text.
type Document struct {
	Sections []Section
}

// Input gathers the pipeline outputs a Document is assembled from.
// Translation is nil when the transcript was already in English.
type Input struct {
	Transcript  string
	Turns       []models.SpeakerTurn
	Summary     models.SummaryResult
	Translation *models.TranslationResult
}

// Assemble builds the compiled document. Section order is fixed; the
// translation section is appended last and only when present.
func Assemble(in Input) Document {
	speakerLines := []string{""}
	for _, turn := range in.Turns {
		speakerLines = append(speakerLines, turn.SpeakerLabel+" - "+turn.Text)
	}

	summaryLines := []string{"", headingSummary, in.Summary.FinalSummary, "", headingChunks}
	summaryLines = append(summaryLines, in.Summary.PartialSummaries...)

	doc := Document{Sections: []Section{
		{Title: TitleOriginal, Lines: []string{"", in.Transcript}},
		{Title: TitleSpeakers, Lines: speakerLines},
		{Title: TitleSummary, Lines: summaryLines},
	}}

	if in.Translation != nil {
		doc.Sections = append(doc.Sections, Section{
			Title: TitleTranslation,
			Lines: []string{in.Translation.TranslatedText},
		})
	}

	return doc
}

// Text renders the document as newline-joined UTF-8 text with two blank
// lines between sections. It is the body of both the stored artifact and
// the notification.
func (d Document) Text() string {
	var lines []string
	for i, s := range d.Sections {
		if i > 0 {
			lines = append(lines, "", "")
		}
		lines = append(lines, s.Title)
		lines = append(lines, s.Lines...)
	}
	return strings.Join(lines, "\n")
}

// Titles returns the section titles in order.
func (d Document) Titles() []string {
	titles := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		titles[i] = s.Title
	}
	return titles
}
