// Package ofx imports bank statements in OFX/QFX format into the
// ledger. Statements carry no category information, so every imported
// record lands in the fallback category for the user to re-file.
package ofx

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"math"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/duitku/duitku/internal/category"
	"github.com/duitku/duitku/internal/model"
)

// Parser reads OFX/QFX statements into transactions.
type Parser struct{}

// NewParser creates an OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

var (
	severityRe = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	openTagRe  = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocess fixes the SGML quirks banks ship: leading blank lines,
// mixed-case SEVERITY values, and opening tags missing their closing
// bracket.
func (p *Parser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRe.ReplaceAllStringFunc(content, strings.ToUpper)
	content = openTagRe.ReplaceAllString(content, "$1>")
	return content
}

// ParseFile parses one OFX/QFX statement into transactions owned by
// userID. A statement that fails to convert is skipped with a warning
// rather than failing the whole file.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader, userID string) ([]model.Transaction, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction
	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		for _, ofxTx := range stmt.BankTranList.Transactions {
			transactions = append(transactions, p.convert(ofxTx, userID))
		}
	}
	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		for _, ofxTx := range stmt.BankTranList.Transactions {
			transactions = append(transactions, p.convert(ofxTx, userID))
		}
	}

	slog.Info("Parsed OFX file",
		"user", userID,
		"transactions", len(transactions))
	return transactions, nil
}

// convert maps one OFX record onto the ledger model. Sign decides the
// type (debits are expenses), the amount becomes whole rupiah, and the
// id is a content hash so re-importing the same statement dedupes on
// the primary key.
func (p *Parser) convert(ofxTx ofxgo.Transaction, userID string) model.Transaction {
	amountFloat, _ := ofxTx.TrnAmt.Float64()

	txType := model.TypeIncome
	if amountFloat < 0 {
		txType = model.TypeExpense
		amountFloat = -amountFloat
	}
	amount := int64(math.Round(amountFloat))

	description := p.describe(ofxTx)
	date := ofxTx.DtPosted.Time

	txn := model.Transaction{
		UserID:      userID,
		Type:        txType,
		Category:    category.Fallback,
		Amount:      amount,
		Description: description,
		Date:        date,
		Source:      model.SourceManual,
	}
	txn.ID = importID(userID, txn)
	return txn
}

// describe prefers the payee name, then NAME, then MEMO.
func (p *Parser) describe(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}
	name := strings.TrimSpace(string(tx.Name))
	if name == "" {
		name = strings.TrimSpace(string(tx.Memo))
	}
	return name
}

// importID derives a stable id from the record's identity fields so
// duplicate imports collide instead of multiplying.
func importID(userID string, txn model.Transaction) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%d|%s",
		userID, txn.Date.UTC().Format("2006-01-02"), txn.Amount, txn.Description))
	return "ofx-" + hex.EncodeToString(sum[:16])
}
