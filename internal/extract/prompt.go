// Package extract implements the transaction-extraction protocol: the
// prompt contract sent to the generation service and the decoder that
// recovers a structured transaction candidate from its free-text reply.
package extract

import (
	"fmt"
	"strings"

	"github.com/duitku/duitku/internal/category"
)

// Ack is the canned assistant turn replayed after the system prompt so
// the model starts from a committed "no follow-up questions" stance.
const Ack = "Siap! Saya akan langsung mencatat transaksi tanpa bertanya balik."

// DefaultMessage is sent when the user attaches media without text.
const DefaultMessage = "Extract data"

// Media hint lines appended after an attachment so the model treats it
// as a receipt or a voice note rather than small talk.
const (
	imageHint = "\n\n(Ekstrak data transaksi dari struk/gambar ini. Langsung catat tanpa bertanya.)"
	audioHint = "\n\n(Dengarkan audio ini dan ekstrak data transaksi. Langsung catat tanpa bertanya.)"
)

// SystemPrompt builds the system instruction. The category sets come
// straight from the taxonomy so the prompt can never drift from what
// storage and the UI accept.
func SystemPrompt() string {
	var sb strings.Builder

	sb.WriteString(`Kamu adalah asisten keuangan AI berbahasa Indonesia yang TEGAS dan EFISIEN.

ATURAN FORMAT RESPONS SANGAT PENTING:
- JANGAN gunakan formatting markdown seperti ** atau * atau backtick
- JANGAN buat penjelasan panjang
- Respons harus SINGKAT, maksimal 1-2 kalimat
- Langsung catat transaksi tanpa bertanya balik

KATEGORI PENGELUARAN:
`)
	sb.WriteString(describeKeys(category.ExpenseKeys()))
	sb.WriteString(", ")
	sb.WriteString(fmt.Sprintf("%s (%s)", category.Fallback, category.Label(category.Fallback)))
	sb.WriteString("\n\nKATEGORI PEMASUKAN:\n")
	sb.WriteString(describeKeys(category.IncomeKeys()))

	sb.WriteString(`

FORMAT RESPONS (WAJIB DIIKUTI):
[Konfirmasi 1 kalimat saja, TANPA formatting]

[JSON]
{"type":"expense/income","category":"kategori","amount":angka,"description":"deskripsi","date":null}
[/JSON]

CONTOH BENAR:
User: "makan soto 15rb"
Respons: Pengeluaran makan soto Rp15.000 sudah dicatat!

[JSON]
{"type":"expense","category":"fnb","amount":15000,"description":"Makan soto","date":null}
[/JSON]

User: "gaji 5 juta"
Respons: Pemasukan gaji Rp5.000.000 sudah dicatat!

[JSON]
{"type":"income","category":"gaji","amount":5000000,"description":"Gaji","date":null}
[/JSON]

UNTUK AUDIO/SUARA:
- Dengarkan dan pahami isi audio
- Ekstrak informasi transaksi dari audio
- Jika tidak bisa memahami audio, respons: "Maaf, audio tidak jelas. Coba ketik manual."`)

	return sb.String()
}

// describeKeys renders keys as "key (Label)" pairs so the model knows
// what belongs in each bucket.
func describeKeys(keys []string) string {
	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = fmt.Sprintf("%s (%s)", key, category.Label(key))
	}
	return strings.Join(parts, ", ")
}
