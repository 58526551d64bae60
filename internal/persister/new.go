package persister

import (
	"fmt"

	"github.com/nguyentantai21042004/meeting-notes/internal/logger"
	"github.com/nguyentantai21042004/meeting-notes/internal/metrics"
	"github.com/nguyentantai21042004/meeting-notes/internal/notifier"
	"github.com/nguyentantai21042004/meeting-notes/internal/records"
	"github.com/nguyentantai21042004/meeting-notes/internal/storage"
)

type Options struct {
	NotesPrefix        string
	CompiledPrefix     string
	TranslationsPrefix string
	DocumentsPrefix    string
	// Docx also stores a DOCX rendition of the compiled document.
	Docx bool

	Notify  bool
	From    string
	Subject string
}

type implPersister struct {
	objects  storage.ObjectStore
	records  records.Store
	notifier notifier.Notifier
	opts     Options
	logger   logger.Logger
	metrics  *metrics.Metrics
}

// New creates a Persister. n may be nil when opts.Notify is false.
func New(objects storage.ObjectStore, rs records.Store, n notifier.Notifier, opts Options, log logger.Logger, m *metrics.Metrics) (Persister, error) {
	if opts.NotesPrefix == "" || opts.CompiledPrefix == "" || opts.TranslationsPrefix == "" {
		return nil, fmt.Errorf("notes, compiled and translations prefixes are required")
	}
	if opts.Docx && opts.DocumentsPrefix == "" {
		return nil, fmt.Errorf("documents prefix is required when docx output is enabled")
	}
	if opts.Notify && n == nil {
		return nil, fmt.Errorf("notifier is required when notification is enabled")
	}

	return &implPersister{
		objects:  objects,
		records:  rs,
		notifier: n,
		opts:     opts,
		logger:   log,
		metrics:  m,
	}, nil
}
