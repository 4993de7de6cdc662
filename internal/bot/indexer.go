package bot

import (
	"context"
	"fmt"

	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/files"
	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/metrics"
)

// OnMediaPosted indexes a media post from the source channel. Posts from other
// chats and posts without a recognized attachment are ignored. A store failure
// is reported to the log channel and returned.
func (h *Handler) OnMediaPosted(ctx context.Context, ev MediaEvent) error {
	if ev.ChatID != h.cfg.SourceChannelID || ev.Attachment == nil || ev.Attachment.Ref == "" {
		return nil
	}

	file, err := h.files.Index(ctx, &files.IndexRequest{
		ExternalRef:     ev.Attachment.Ref,
		Name:            ev.Attachment.Name,
		Caption:         ev.Caption,
		SourceMessageID: ev.MessageID,
		SourceChannelID: ev.ChatID,
		Kind:            ev.Attachment.Kind,
	})
	if err != nil {
		metrics.IndexFailures.Inc()
		h.logger.Error("Indexing failed",
			"error", err,
			"message_id", ev.MessageID,
			"name", ev.Attachment.Name,
		)
		name := ev.Attachment.Name
		if name == "" {
			name = ev.Caption
		}
		h.notifyOperator(ctx, fmt.Sprintf("Failed to index file %q (message %d): %v", name, ev.MessageID, err))
		return err
	}

	metrics.FilesIndexed.Inc()
	h.logger.Info("Indexed file", "file_id", file.ID, "name", file.DisplayName(), "kind", file.Kind)
	h.notifyOperator(ctx, "Indexed file: "+file.DisplayName())

	return nil
}
