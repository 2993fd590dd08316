package extract

import (
	"testing"
	"time"

	"github.com/duitku/duitku/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sotoReply = "Pengeluaran makan soto Rp15.000 sudah dicatat!\n\n" +
	"[JSON]\n{\"type\":\"expense\",\"category\":\"fnb\",\"amount\":15000,\"description\":\"Makan soto\",\"date\":null}\n[/JSON]"

func TestDecodeTaggedBlock(t *testing.T) {
	cand, reply := Decode(sotoReply)

	require.NotNil(t, cand)
	assert.Equal(t, model.TypeExpense, cand.Type)
	assert.Equal(t, "fnb", cand.Category)
	assert.Equal(t, int64(15000), cand.Amount)
	assert.Equal(t, "Makan soto", cand.Description)
	assert.Nil(t, cand.Date)

	assert.Equal(t, "Pengeluaran makan soto Rp15.000 sudah dicatat!", reply)
	assert.NotContains(t, reply, "[JSON]")
	assert.NotContains(t, reply, "{")
}

func TestDecodeFencedBlock(t *testing.T) {
	text := "Gaji tercatat!\n```json\n{\"type\":\"income\",\"category\":\"gaji\",\"amount\":5000000,\"description\":\"Gaji\",\"date\":null}\n```"

	cand, reply := Decode(text)
	require.NotNil(t, cand)
	assert.Equal(t, model.TypeIncome, cand.Type)
	assert.Equal(t, int64(5000000), cand.Amount)
	assert.Equal(t, "Gaji tercatat!", reply)
}

func TestDecodeBareFence(t *testing.T) {
	text := "Oke!\n```\n{\"type\":\"expense\",\"category\":\"pulsa\",\"amount\":50000,\"description\":\"Pulsa\",\"date\":null}\n```"

	cand, reply := Decode(text)
	require.NotNil(t, cand)
	assert.Equal(t, "pulsa", cand.Category)
	assert.Equal(t, "Oke!", reply)
}

func TestDecodeRawObjectScan(t *testing.T) {
	text := `Sudah dicatat ya. {"type":"expense","category":"transport","amount":25000,"description":"Gojek","date":null} Semoga harimu lancar!`

	cand, reply := Decode(text)
	require.NotNil(t, cand)
	assert.Equal(t, "transport", cand.Category)
	assert.Equal(t, int64(25000), cand.Amount)
	assert.Equal(t, "Sudah dicatat ya.  Semoga harimu lancar!", reply)
}

func TestDecodePrecedence(t *testing.T) {
	// A tagged block wins over a fenced one appearing earlier in the text.
	text := "```json\n{\"type\":\"expense\",\"category\":\"belanja\",\"amount\":1,\"description\":\"fence\",\"date\":null}\n```\n" +
		"[JSON]{\"type\":\"expense\",\"category\":\"fnb\",\"amount\":2,\"description\":\"tag\",\"date\":null}[/JSON]"

	cand, reply := Decode(text)
	require.NotNil(t, cand)
	assert.Equal(t, "tag", cand.Description)
	// Cleanup removes both blocks regardless of which stage matched.
	assert.Empty(t, reply)
}

func TestDecodeProseOnly(t *testing.T) {
	text := "Maaf, audio tidak jelas. Coba ketik manual."

	cand, reply := Decode(text)
	assert.Nil(t, cand)
	assert.Equal(t, text, reply)
}

func TestDecodeMalformedJSONLeavesTextUntouched(t *testing.T) {
	text := "Oke!\n[JSON]\n{\"type\":\"expense\", amount: }\n[/JSON]"

	cand, reply := Decode(text)
	assert.Nil(t, cand)
	assert.Equal(t, text, reply)
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	text := `[JSON]{"type":"transfer","category":"fnb","amount":100,"description":"x","date":null}[/JSON]`

	cand, _ := Decode(text)
	assert.Nil(t, cand)
}

func TestDecodeRejectsMissingAmount(t *testing.T) {
	text := "[JSON]{\"type\":\"expense\",\"category\":\"fnb\",\"description\":\"x\",\"date\":null}[/JSON]"

	cand, _ := Decode(text)
	assert.Nil(t, cand)
}

func TestDecodeNormalizesCase(t *testing.T) {
	text := `[JSON]{"type":"Expense","category":"FnB","amount":100,"description":"x","date":null}[/JSON]`

	cand, _ := Decode(text)
	require.NotNil(t, cand)
	assert.Equal(t, model.TypeExpense, cand.Type)
	assert.Equal(t, "fnb", cand.Category)
}

func TestDecodeFloatAmountRounds(t *testing.T) {
	text := `[JSON]{"type":"expense","category":"fnb","amount":15000.6,"description":"x","date":null}[/JSON]`

	cand, _ := Decode(text)
	require.NotNil(t, cand)
	assert.Equal(t, int64(15001), cand.Amount)
}

func TestDecodeParsesDate(t *testing.T) {
	text := `[JSON]{"type":"expense","category":"fnb","amount":100,"description":"x","date":"2024-03-05"}[/JSON]`

	cand, _ := Decode(text)
	require.NotNil(t, cand)
	require.NotNil(t, cand.Date)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local), *cand.Date)
}

func TestDecodeIsIdempotent(t *testing.T) {
	for _, text := range []string{sotoReply, "just prose", ""} {
		first, firstReply := Decode(text)
		second, secondReply := Decode(text)
		assert.Equal(t, first, second)
		assert.Equal(t, firstReply, secondReply)
	}
}
