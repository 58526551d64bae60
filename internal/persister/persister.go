package persister

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nguyentantai21042004/meeting-notes/internal/document"
	"github.com/nguyentantai21042004/meeting-notes/internal/notifier"
	"github.com/nguyentantai21042004/meeting-notes/internal/transcript"
)

const (
	kindNotes       = "notes"
	kindTranslation = "translation"
	kindCompiled    = "compiled"
	kindDocx        = "docx"
)

func (p *implPersister) Persist(ctx context.Context, in Input) error {
	recordID, err := transcript.RecordID(in.TranscriptID)
	if err != nil {
		return err
	}

	body := in.Document.Text()

	if err := p.writeArtifacts(ctx, in, body); err != nil {
		return err
	}

	rec, err := p.records.Get(ctx, recordID)
	if err != nil {
		return fmt.Errorf("load record: %w", err)
	}
	if err := p.records.UpdateSummary(ctx, recordID, body); err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	p.logger.Info(ctx, "Updated record %s with compiled notes (%d chars)", recordID, len(body))

	if !p.opts.Notify {
		return nil
	}

	msg := notifier.Message{
		From:    p.opts.From,
		To:      rec.Owner,
		Subject: p.opts.Subject,
		Body:    body,
	}
	if err := p.notifier.Send(ctx, msg); err != nil {
		p.metrics.NotificationFailures.Inc()
		p.logger.Error(ctx, "Failed to notify %s for record %s: %v", rec.Owner, recordID, err)
		return nil
	}
	p.metrics.NotificationsSent.Inc()
	p.logger.Info(ctx, "Notification sent to %s", rec.Owner)

	return nil
}

func (p *implPersister) writeArtifacts(ctx context.Context, in Input, body string) error {
	notes, err := json.Marshal(in.Summary)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	if err := p.put(ctx, kindNotes, transcript.ArtifactKey(p.opts.NotesPrefix, in.TranscriptID, "txt"), notes); err != nil {
		return err
	}

	if in.Translation != nil {
		translation, err := json.Marshal(in.Translation)
		if err != nil {
			return fmt.Errorf("encode translation: %w", err)
		}
		if err := p.put(ctx, kindTranslation, transcript.ArtifactKey(p.opts.TranslationsPrefix, in.TranscriptID, "txt"), translation); err != nil {
			return err
		}
	}

	if err := p.put(ctx, kindCompiled, transcript.ArtifactKey(p.opts.CompiledPrefix, in.TranscriptID, "txt"), []byte(body)); err != nil {
		return err
	}

	if p.opts.Docx {
		data, err := document.RenderDocx(in.Document)
		if err != nil {
			return fmt.Errorf("render docx: %w", err)
		}
		if err := p.put(ctx, kindDocx, transcript.ArtifactKey(p.opts.DocumentsPrefix, in.TranscriptID, "docx"), data); err != nil {
			return err
		}
	}

	return nil
}

func (p *implPersister) put(ctx context.Context, kind, key string, data []byte) error {
	if err := p.objects.Put(ctx, key, data); err != nil {
		return fmt.Errorf("write %s artifact %s: %w", kind, key, err)
	}
	p.metrics.ArtifactWrites.WithLabelValues(kind).Inc()
	p.logger.Debug(ctx, "Wrote %s (%d bytes)", key, len(data))
	return nil
}
