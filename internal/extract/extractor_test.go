package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/duitku/duitku/internal/common"
	"github.com/duitku/duitku/internal/gemini"
	"github.com/duitku/duitku/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTurnText(t *testing.T) {
	mock := &gemini.MockClient{Reply: sotoReply}
	ext := NewExtractor(mock)

	res, err := ext.ExtractTurn(context.Background(), Turn{Message: "makan soto 15rb"})
	require.NoError(t, err)

	require.NotNil(t, res.Candidate)
	assert.Equal(t, model.TypeExpense, res.Candidate.Type)
	assert.Equal(t, "fnb", res.Candidate.Category)
	assert.Equal(t, int64(15000), res.Candidate.Amount)
	assert.Equal(t, "Makan soto", res.Candidate.Description)
	assert.Nil(t, res.Candidate.Date)
	assert.Equal(t, model.SourceChat, res.Source)
	assert.Equal(t, "Pengeluaran makan soto Rp15.000 sudah dicatat!", res.Reply)

	// The system instruction and canned ack travel with the turn.
	require.NotNil(t, mock.LastReq)
	assert.Contains(t, mock.LastReq.SystemPrompt, "KATEGORI PENGELUARAN")
	assert.Contains(t, mock.LastReq.SystemPrompt, "fnb")
	assert.Contains(t, mock.LastReq.SystemPrompt, "gaji")
	assert.Equal(t, Ack, mock.LastReq.Ack)
}

func TestExtractTurnImageTagsOCR(t *testing.T) {
	mock := &gemini.MockClient{Reply: sotoReply}
	ext := NewExtractor(mock)

	res, err := ext.ExtractTurn(context.Background(), Turn{
		Media: &Media{Data: []byte{0x1}, MIMEType: "image/jpeg"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.SourceOCR, res.Source)

	// Media-only turns still carry a text part plus the receipt hint.
	require.Len(t, mock.LastReq.Parts, 3)
	assert.Equal(t, DefaultMessage, mock.LastReq.Parts[0].Text)
	require.NotNil(t, mock.LastReq.Parts[1].InlineData)
	assert.Contains(t, mock.LastReq.Parts[2].Text, "struk")
}

func TestExtractTurnAudioTagsVoice(t *testing.T) {
	mock := &gemini.MockClient{Reply: "Maaf, audio tidak jelas. Coba ketik manual."}
	ext := NewExtractor(mock)

	res, err := ext.ExtractTurn(context.Background(), Turn{
		Media: &Media{Data: []byte{0x1}, MIMEType: "audio/webm"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.SourceVoice, res.Source)
	assert.Nil(t, res.Candidate)
	assert.Equal(t, "Maaf, audio tidak jelas. Coba ketik manual.", res.Reply)
}

func TestExtractTurnRequiresInput(t *testing.T) {
	ext := NewExtractor(&gemini.MockClient{})

	_, err := ext.ExtractTurn(context.Background(), Turn{Message: "   "})
	assert.ErrorIs(t, err, common.ErrEmptyTurn)
}

func TestExtractTurnUpstreamErrorIsTerminal(t *testing.T) {
	boom := errors.New("service unavailable")
	ext := NewExtractor(&gemini.MockClient{Err: boom})

	_, err := ext.ExtractTurn(context.Background(), Turn{Message: "makan 10rb"})
	assert.ErrorIs(t, err, boom)
}
