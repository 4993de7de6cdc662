package bot

import (
	"context"
	"errors"
	"strings"

	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/files"
	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/metrics"
	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/paging"
)

// OnText handles a text message: commands are dispatched, anything else is a search
func (h *Handler) OnText(ctx context.Context, ev TextEvent) {
	if strings.HasPrefix(ev.Text, "/") {
		h.onCommand(ctx, ev)
		return
	}
	if ev.ChatType != ChatPrivate && !ev.ChatType.IsGroup() {
		return
	}

	if ev.ChatType.IsGroup() && h.cfg.GroupRedirect {
		h.reply(ctx, Text{
			ChatID:  ev.ChatID,
			ReplyTo: ev.MessageID,
			Text:    h.cfg.Texts.GroupRedirect,
			Keyboard: Keyboard{{{
				Text: h.cfg.Texts.GroupButton,
				URL:  "https://t.me/" + h.cfg.Username + "?start=1",
			}}},
		}, true)
		return
	}

	query := files.CleanQuery(ev.Text, h.cfg.Username)
	if query == "" {
		return
	}

	h.search(ctx, ev, query)
}

func (h *Handler) search(ctx context.Context, ev TextEvent, query string) {
	results, err := h.files.Search(ctx, query)
	if err != nil {
		metrics.Searches.WithLabelValues(metrics.OutcomeError).Inc()
		h.logger.Error("Search failed", "error", err, "query", query)
		h.reply(ctx, Text{ChatID: ev.ChatID, ReplyTo: ev.MessageID, Text: h.cfg.Texts.Failure}, true)
		return
	}

	h.logger.Debug("Search", "query", query, "results", len(results), "chat_id", ev.ChatID)

	switch len(results) {
	case 0:
		metrics.Searches.WithLabelValues(metrics.OutcomeNone).Inc()
		h.reply(ctx, Text{ChatID: ev.ChatID, ReplyTo: ev.MessageID, Text: h.cfg.Texts.NotFound}, true)
	case 1:
		metrics.Searches.WithLabelValues(metrics.OutcomeSingle).Inc()
		h.deliver(ctx, ev.ChatID, ev.MessageID, results[0])
	default:
		metrics.Searches.WithLabelValues(metrics.OutcomeMulti).Inc()
		page := paging.Render(query, 1, h.cfg.PageSize, results)
		if page.NavDropped {
			h.logger.Warn("Query too long for page navigation", "query", query)
		}
		h.reply(ctx, Text{
			ChatID:   ev.ChatID,
			ReplyTo:  ev.MessageID,
			Text:     h.cfg.Texts.Listing,
			Keyboard: h.keyboard(page),
		}, true)
	}
}

// deliver sends the file with the method matching its kind, followed by a
// reminder. Both are removed after the delay.
func (h *Handler) deliver(ctx context.Context, chatID int64, replyTo int, f *files.File) {
	media := Media{
		ChatID:  chatID,
		ReplyTo: replyTo,
		Ref:     f.ExternalRef,
		Caption: f.DisplayName(),
	}

	var send func(context.Context, Media) (Message, error)
	switch f.Kind {
	case files.KindVideo:
		send = h.tr.SendVideo
	case files.KindAudio:
		send = h.tr.SendAudio
	default:
		send = h.tr.SendDocument
	}

	msg, err := send(ctx, media)
	if err != nil {
		h.logger.Warn("Failed to deliver file", "file_id", f.ID, "kind", f.Kind, "error", err)
		return
	}
	metrics.Deliveries.WithLabelValues(string(f.Kind)).Inc()
	h.scheduleDelete(msg)

	h.reply(ctx, Text{ChatID: chatID, ReplyTo: replyTo, Text: h.cfg.Texts.Reminder}, true)
}

func (h *Handler) keyboard(page paging.Page) Keyboard {
	kb := make(Keyboard, 0, len(page.Items)+1)
	for _, it := range page.Items {
		kb = append(kb, []Button{{Text: it.Label, Data: it.Data}})
	}

	var nav []Button
	if page.Prev != "" {
		nav = append(nav, Button{Text: h.cfg.Texts.PrevButton, Data: page.Prev})
	}
	if page.Next != "" {
		nav = append(nav, Button{Text: h.cfg.Texts.NextButton, Data: page.Next})
	}
	if len(nav) > 0 {
		kb = append(kb, nav)
	}

	return kb
}

// OnCallback handles a button press. The callback is always answered exactly once.
func (h *Handler) OnCallback(ctx context.Context, ev CallbackEvent) {
	acked := false
	answer := func(text string, alert bool) {
		if acked {
			if text != "" && ev.Message.ChatID != 0 {
				h.reply(ctx, Text{ChatID: ev.Message.ChatID, Text: text}, true)
			}
			return
		}
		acked = true
		if err := h.tr.AnswerCallback(ctx, ev.ID, text, alert); err != nil {
			h.logger.Debug("Callback answer rejected", "callback_id", ev.ID, "error", err)
		}
	}

	if h.cfg.AckFirst {
		answer("", false)
	}
	defer answer("", false)

	switch {
	case paging.IsPage(ev.Data):
		h.navigate(ctx, ev, answer)
	case paging.IsSelection(ev.Data):
		h.selectFile(ctx, ev, answer)
	default:
		answer(h.cfg.Texts.InvalidCallback, true)
	}
}

// navigate re-runs the search for the token's query and edits the listing in place
func (h *Handler) navigate(ctx context.Context, ev CallbackEvent, answer func(string, bool)) {
	tok, err := paging.Decode(ev.Data)
	if err != nil || ev.Message.ChatID == 0 {
		h.logger.Debug("Invalid page callback", "data", ev.Data, "error", err)
		answer(h.cfg.Texts.InvalidCallback, true)
		return
	}

	results, err := h.files.Search(ctx, tok.Query)
	if err != nil {
		h.logger.Error("Search failed", "error", err, "query", tok.Query)
		answer(h.cfg.Texts.Failure, true)
		return
	}

	page := paging.Render(tok.Query, tok.Page, h.cfg.PageSize, results)
	if err := h.tr.EditText(ctx, ev.Message, h.cfg.Texts.Listing, h.keyboard(page)); err != nil {
		h.logger.Debug("Failed to edit listing", "chat_id", ev.Message.ChatID, "message_id", ev.Message.ID, "error", err)
	}
	h.scheduleDelete(ev.Message)

	answer("", false)
}

// selectFile looks up the chosen record by id and delivers it
func (h *Handler) selectFile(ctx context.Context, ev CallbackEvent, answer func(string, bool)) {
	id, err := paging.DecodeSelection(ev.Data)
	if err != nil || ev.Message.ChatID == 0 {
		answer(h.cfg.Texts.InvalidCallback, true)
		return
	}

	f, err := h.files.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, files.ErrNotFound) {
			h.logger.Error("File lookup failed", "error", err, "file_id", id)
		}
		answer(h.cfg.Texts.FileNotFound, true)
		return
	}

	h.deliver(ctx, ev.Message.ChatID, ev.Message.ID, f)
	answer("", false)
}
