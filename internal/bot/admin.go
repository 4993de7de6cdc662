package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/metrics"
)

// Command keywords
const (
	CommandStart      = "start"
	CommandHelp       = "help"
	CommandStats      = "stats"
	CommandDeleteFile = "deletefile"
)

func (h *Handler) onCommand(ctx context.Context, ev TextEvent) {
	fields := strings.Fields(ev.Text)
	if len(fields) == 0 {
		return
	}

	cmd := strings.TrimPrefix(fields[0], "/")
	if name, target, ok := strings.Cut(cmd, "@"); ok {
		// Addressed to another bot in a group
		if h.cfg.Username != "" && !strings.EqualFold(target, h.cfg.Username) {
			return
		}
		cmd = name
	}
	args := fields[1:]

	out := Text{ChatID: ev.ChatID, ReplyTo: ev.MessageID}

	switch cmd {
	case CommandStart:
		out.Text = h.cfg.Texts.Start
	case CommandHelp:
		out.Text = h.cfg.Texts.Help
	case CommandStats:
		if ev.ChatType != ChatPrivate && !ev.ChatType.IsGroup() {
			return
		}
		out.Text = h.stats(ctx, ev)
	case CommandDeleteFile:
		if ev.ChatType != ChatPrivate {
			return
		}
		out.Text = h.deleteByName(ctx, ev, strings.Join(args, " "))
	default:
		return
	}

	h.reply(ctx, out, false)
}

func (h *Handler) stats(ctx context.Context, ev TextEvent) string {
	if !h.authorized(ctx, ev) {
		metrics.AdminDenied.WithLabelValues(CommandStats).Inc()
		return h.cfg.Texts.Denied
	}

	n, err := h.files.Count(ctx)
	if err != nil {
		h.logger.Error("Count failed", "error", err)
		return h.cfg.Texts.Failure
	}
	return fmt.Sprintf("Total indexed files: %d", n)
}

// deleteByName removes every record matching name, the same way search matches
func (h *Handler) deleteByName(ctx context.Context, ev TextEvent, name string) string {
	if !h.authorized(ctx, ev) {
		metrics.AdminDenied.WithLabelValues(CommandDeleteFile).Inc()
		return h.cfg.Texts.Denied
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return h.cfg.Texts.DeleteUsage
	}

	n, err := h.files.DeleteByName(ctx, name)
	if err != nil {
		h.logger.Error("Delete by name failed", "error", err, "name", name, "deleted", n)
		if n == 0 {
			return h.cfg.Texts.Failure
		}
	}
	if n == 0 {
		return fmt.Sprintf("No indexed files found matching '%s'.", name)
	}

	h.logger.Info("Deleted files by name", "name", name, "deleted", n, "user_id", ev.UserID)
	return fmt.Sprintf("Deleted %d indexed file(s) matching '%s'.", n, name)
}

// authorized reports whether the sender is on the admin list or, outside
// private chats, an owner or administrator of the chat. Lookup errors deny.
func (h *Handler) authorized(ctx context.Context, ev TextEvent) bool {
	if _, ok := h.admins[ev.UserID]; ok {
		return true
	}
	if ev.ChatType == ChatPrivate {
		return false
	}

	role, err := h.tr.MemberRole(ctx, ev.ChatID, ev.UserID)
	if err != nil {
		h.logger.Debug("Member lookup failed", "chat_id", ev.ChatID, "user_id", ev.UserID, "error", err)
		return false
	}

	return role == RoleOwner || role == RoleAdministrator
}
