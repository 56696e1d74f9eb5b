package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/codec"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/model"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/password"
)

// handleCommand parses one chat message's text and returns the reply the
// bot should send. It never returns an error: every failure mode (bad
// syntax, policy violation, unauthorized caller) becomes a user-facing
// message instead, the same totality Verify gives callers.
func (s *Server) handleCommand(ctx context.Context, msg *Message) string {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return "send a command: /temporary, /times, /limited, /period, /verify"
	}

	fields := strings.Fields(text)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	inviterID := int64(0)
	if msg.From != nil {
		inviterID = msg.From.ID
	}

	switch cmd {
	case "/start", "/help":
		return "commands: /temporary, /times N, /limited H M, /period YYYY-MM-DD HH:MM, /verify CODE"
	case "/temporary":
		return s.issue(ctx, inviterID, msg.Chat.ID, model.Temporary{})
	case "/times":
		if len(args) != 1 {
			return "usage: /times N (1-31)"
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return "usage: /times N (1-31)"
		}
		return s.issue(ctx, inviterID, msg.Chat.ID, model.Times{N: n})
	case "/limited":
		if len(args) < 1 {
			return "usage: /limited HOURS [MINUTES]"
		}
		hours, err := strconv.Atoi(args[0])
		if err != nil {
			return "usage: /limited HOURS [MINUTES]"
		}
		minutes := 0
		if len(args) > 1 {
			minutes, err = strconv.Atoi(args[1])
			if err != nil {
				return "usage: /limited HOURS [MINUTES]"
			}
		}
		return s.issue(ctx, inviterID, msg.Chat.ID, model.Limited{Hours: hours, Minutes: minutes})
	case "/period":
		if !s.cfg.IsSuperAdmin(inviterID) {
			return "only a super admin may issue a period password"
		}
		deadline := strings.Join(args, " ")
		year, month, day, hour, err := codec.ParsePeriodDeadline(normalizeDeadline(deadline))
		if err != nil {
			return "usage: /period YYYY-MM-DD HH:MM"
		}
		return s.issue(ctx, inviterID, msg.Chat.ID, model.Period{Year: year, Month: month, Day: day, Hour: hour})
	case "/verify":
		if len(args) != 1 {
			return "usage: /verify CODE"
		}
		return s.verify(args[0])
	default:
		return "unrecognized command; try /help"
	}
}

func (s *Server) issue(ctx context.Context, inviterID, chatID int64, req model.Request) string {
	rec, err := password.Generate(s.cfg.AdminKey, req, s.clock)
	if err != nil {
		return "could not issue a password: " + err.Error()
	}

	_, storeErr := s.store.CreateRecord(ctx, model.PersistedRecord{
		VisitorID:   chatID,
		InviterID:   inviterID,
		Variant:     req.Variant(),
		EmittedText: rec.Text,
		StartTime:   s.clock.Now(),
		EndTime:     rec.ExpiresAt,
		Status:      model.RecordPending,
	})
	if storeErr != nil {
		return fmt.Sprintf("%s\ncode: %s\n(warning: failed to record this issuance)", rec.Message, rec.Text)
	}

	return fmt.Sprintf("%s\ncode: %s", rec.Message, rec.Text)
}

func (s *Server) verify(text string) string {
	res, ok := password.Verify(text, s.cfg.AdminKey, s.clock)
	if !ok {
		return "invalid or expired code"
	}
	return fmt.Sprintf("valid %s password, %s remaining", res.Variant, res.Remaining.Round(1e9))
}

// normalizeDeadline fills in a trailing ":00" seconds field when the
// operator typed only hours and minutes, since codec.ParsePeriodDeadline
// expects the full "YYYY-MM-DD HH:MM:SS" layout.
func normalizeDeadline(s string) string {
	if strings.Count(s, ":") == 1 {
		return s + ":00"
	}
	return s
}
