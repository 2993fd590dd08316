package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/duitku/duitku/internal/assistant"
	"github.com/duitku/duitku/internal/category"
	"github.com/duitku/duitku/internal/extract"
	"github.com/duitku/duitku/internal/model"
)

// mimeTypes maps attachment extensions to the MIME type sent upstream.
var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".mp3":  "audio/mp3",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
}

// ChatSession is the interactive terminal assistant.
type ChatSession struct {
	assistant *assistant.Service
	in        *Reader
	out       io.Writer
	userID    string
}

// NewChatSession creates a terminal session for one user.
func NewChatSession(svc *assistant.Service, userID string, in io.Reader, out io.Writer) *ChatSession {
	return &ChatSession{
		assistant: svc,
		userID:    userID,
		in:        NewReader(in),
		out:       out,
	}
}

// Run drives the read-process-print loop until EOF, /keluar, or
// context cancellation.
func (s *ChatSession) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, TitleStyle.Render("DuitKu"))
	fmt.Fprintln(s.out, SubtleStyle.Render("Ceritakan transaksimu. /foto <path>, /suara <path>, /riwayat, /keluar"))
	fmt.Fprintln(s.out)

	for {
		fmt.Fprint(s.out, PromptStyle.Render("> "))
		line, err := s.in.ReadLine(ctx)
		if errors.Is(err, ErrInputCancelled) || errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		turn, quit, handled := s.parseCommand(ctx, line)
		if quit {
			return nil
		}
		if handled {
			continue
		}

		s.processTurn(ctx, turn)
	}
}

// parseCommand interprets slash commands. It returns the turn to send
// when the line is a message or an attachment command.
func (s *ChatSession) parseCommand(ctx context.Context, line string) (turn extract.Turn, quit, handled bool) {
	if !strings.HasPrefix(line, "/") {
		return extract.Turn{Message: line}, false, false
	}

	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "/keluar", "/exit", "/quit":
		return extract.Turn{}, true, true
	case "/riwayat":
		s.printHistory(ctx)
		return extract.Turn{}, false, true
	case "/hapus":
		if err := s.assistant.ClearHistory(ctx, s.userID); err != nil {
			fmt.Fprintln(s.out, ErrorStyle.Render("Gagal menghapus riwayat: "+err.Error()))
		} else {
			fmt.Fprintln(s.out, SubtleStyle.Render("Riwayat dihapus."))
		}
		return extract.Turn{}, false, true
	case "/foto", "/suara":
		media, err := loadMedia(rest)
		if err != nil {
			fmt.Fprintln(s.out, ErrorStyle.Render(err.Error()))
			return extract.Turn{}, false, true
		}
		return extract.Turn{Media: media}, false, false
	default:
		fmt.Fprintln(s.out, WarningStyle.Render("Perintah tidak dikenal: "+cmd))
		return extract.Turn{}, false, true
	}
}

func (s *ChatSession) processTurn(ctx context.Context, turn extract.Turn) {
	result, err := s.assistant.ProcessTurn(ctx, s.userID, turn)
	if err != nil {
		fmt.Fprintln(s.out, ErrorStyle.Render("Gagal: "+err.Error()))
		return
	}

	fmt.Fprintln(s.out, ReplyStyle.Render(result.Reply))

	if result.Candidate == nil {
		s.assistant.RecordReply(ctx, s.userID, result.Reply, false)
		return
	}

	txn, saveErr := s.assistant.SaveCandidate(ctx, s.userID, result.Candidate, result.Source)
	s.assistant.RecordReply(ctx, s.userID, result.Reply, saveErr == nil)
	if saveErr != nil {
		fmt.Fprintln(s.out, WarningStyle.Render("Transaksi terbaca tapi gagal disimpan."))
		return
	}
	fmt.Fprintln(s.out, CardStyle.Render(formatCard(txn)))
}

func (s *ChatSession) printHistory(ctx context.Context) {
	history, err := s.assistant.History(ctx, s.userID, 0)
	if err != nil {
		fmt.Fprintln(s.out, ErrorStyle.Render("Gagal memuat riwayat: "+err.Error()))
		return
	}
	if len(history) == 0 {
		fmt.Fprintln(s.out, SubtleStyle.Render("Belum ada riwayat."))
		return
	}
	for _, msg := range history {
		prefix := "kamu"
		if msg.Role == model.RoleAssistant {
			prefix = "duitku"
		}
		fmt.Fprintf(s.out, "%s %s\n", SubtleStyle.Render(prefix+":"), msg.Content)
	}
}

func loadMedia(path string) (*extract.Media, error) {
	if path == "" {
		return nil, fmt.Errorf("sebutkan path berkasnya")
	}

	mimeType, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("format %s tidak didukung", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gagal membaca %s: %w", path, err)
	}
	return &extract.Media{Data: data, MIMEType: mimeType}, nil
}

func formatCard(txn *model.Transaction) string {
	arrow := "-"
	if txn.Type == model.TypeIncome {
		arrow = "+"
	}
	line := fmt.Sprintf("%s %s  %s", arrow, FormatRupiah(txn.Amount), category.Label(txn.Category))
	if txn.Description != "" {
		line += "\n" + txn.Description
	}
	return line
}

// FormatRupiah renders an amount with dot thousand separators, the
// way Indonesian apps print money.
func FormatRupiah(amount int64) string {
	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	b.WriteString("Rp")
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return b.String()
}
