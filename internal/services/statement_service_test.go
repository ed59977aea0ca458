package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/justmenoble-ux/mano-web-app/internal/extraction"
	"github.com/justmenoble-ux/mano-web-app/internal/models"
	"github.com/justmenoble-ux/mano-web-app/internal/testutil"
)

// mockExtractor returns canned candidates or a canned error.
type mockExtractor struct {
	candidates []extraction.Candidate
	err        error
	gotContent string
}

func (m *mockExtractor) Extract(_ context.Context, content string) ([]extraction.Candidate, error) {
	m.gotContent = content
	if m.err != nil {
		return nil, m.err
	}
	return m.candidates, nil
}

func xlsxBytes(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to build cell name: %v", err)
			}
			if err := f.SetCellValue("Sheet1", name, cell); err != nil {
				t.Fatalf("failed to set cell: %v", err)
			}
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("failed to serialize workbook: %v", err)
	}
	return buf.Bytes()
}

func TestCreateFromUpload(t *testing.T) {
	t.Run("csv passes through", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatementService(db, &mockExtractor{})
		accountID := testutil.NewAccountID()

		content := "date,vendor,amount\n2024-01-05,Loblaws,42.50\n"
		statement, err := svc.CreateFromUpload(accountID, models.OwnerMember1, "jan.csv", []byte(content))
		testutil.AssertNoError(t, err)
		if statement.Status != models.StatementStatusPending {
			t.Errorf("expected pending status, got %s", statement.Status)
		}
		if statement.Content != content {
			t.Errorf("expected raw CSV content, got %q", statement.Content)
		}
		if statement.Owner != models.OwnerMember1 {
			t.Errorf("expected owner member1, got %s", statement.Owner)
		}
	})

	t.Run("spreadsheet is flattened", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatementService(db, &mockExtractor{})

		data := xlsxBytes(t, [][]string{
			{"date", "vendor", "amount"},
			{"2024-01-05", "Loblaws", "42.50"},
		})
		statement, err := svc.CreateFromUpload(testutil.NewAccountID(), models.OwnerCombined, "jan.xlsx", data)
		testutil.AssertNoError(t, err)
		want := "date,vendor,amount\n2024-01-05,Loblaws,42.50\n"
		if statement.Content != want {
			t.Errorf("expected flattened content %q, got %q", want, statement.Content)
		}
	})

	t.Run("empty owner defaults to combined", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatementService(db, &mockExtractor{})

		statement, err := svc.CreateFromUpload(testutil.NewAccountID(), "", "jan.csv", []byte("x"))
		testutil.AssertNoError(t, err)
		if statement.Owner != models.OwnerCombined {
			t.Errorf("expected combined owner, got %s", statement.Owner)
		}
	})

	t.Run("unsupported extension rejected before any record", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatementService(db, &mockExtractor{})
		accountID := testutil.NewAccountID()

		_, err := svc.CreateFromUpload(accountID, models.OwnerCombined, "statement.pdf", []byte("%PDF"))
		testutil.AssertAppError(t, err, "UNSUPPORTED_FILE_TYPE")

		var count int64
		db.Model(&models.Statement{}).Where("account_id = ?", accountID).Count(&count)
		if count != 0 {
			t.Errorf("expected no statement rows, got %d", count)
		}
	})

	t.Run("corrupt spreadsheet rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatementService(db, &mockExtractor{})

		_, err := svc.CreateFromUpload(testutil.NewAccountID(), models.OwnerCombined, "jan.xlsx", []byte("not a workbook"))
		testutil.AssertAppError(t, err, "SPREADSHEET_PARSE_FAILED")
	})

	t.Run("unknown owner rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatementService(db, &mockExtractor{})

		_, err := svc.CreateFromUpload(testutil.NewAccountID(), models.Owner("roommate"), "jan.csv", []byte("x"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestProcess(t *testing.T) {
	t.Run("stores extracted transactions with inherited owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		extractor := &mockExtractor{candidates: []extraction.Candidate{
			{Date: day(2024, time.January, 5), Vendor: "Loblaws", Amount: 4250, Category: "Groceries"},
			{Date: day(2024, time.January, 7), Vendor: "Netflix", Amount: 1599, Category: "Subscriptions"},
		}}
		svc := NewStatementService(db, extractor)
		accountID := testutil.NewAccountID()
		statement := testutil.CreateTestStatement(t, db, accountID, models.OwnerMember2)

		already, err := svc.Process(context.Background(), accountID, statement.ID)
		testutil.AssertNoError(t, err)
		if already {
			t.Error("expected first processing run")
		}
		if extractor.gotContent != statement.Content {
			t.Error("expected the stored content to be handed to the extractor")
		}

		var updated models.Statement
		db.First(&updated, statement.ID)
		if updated.Status != models.StatementStatusProcessed {
			t.Errorf("expected processed status, got %s", updated.Status)
		}

		var transactions []models.Transaction
		db.Where("statement_id = ?", statement.ID).Find(&transactions)
		if len(transactions) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(transactions))
		}
		for _, tx := range transactions {
			if tx.Owner != models.OwnerMember2 {
				t.Errorf("expected owner inherited from statement, got %s", tx.Owner)
			}
			if tx.AccountID != accountID {
				t.Errorf("expected account %s, got %s", accountID, tx.AccountID)
			}
		}
	})

	t.Run("already processed is a no-op", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		extractor := &mockExtractor{candidates: []extraction.Candidate{
			{Date: day(2024, time.January, 5), Vendor: "Loblaws", Amount: 4250, Category: "Groceries"},
		}}
		svc := NewStatementService(db, extractor)
		accountID := testutil.NewAccountID()
		statement := testutil.CreateTestStatement(t, db, accountID, models.OwnerCombined)

		_, err := svc.Process(context.Background(), accountID, statement.ID)
		testutil.AssertNoError(t, err)

		already, err := svc.Process(context.Background(), accountID, statement.ID)
		testutil.AssertNoError(t, err)
		if !already {
			t.Error("expected alreadyProcessed on the second run")
		}

		var count int64
		db.Model(&models.Transaction{}).Where("statement_id = ?", statement.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected no duplicate transactions, got %d", count)
		}
	})

	t.Run("extraction failure marks statement failed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatementService(db, &mockExtractor{err: errors.New("model unavailable")})
		accountID := testutil.NewAccountID()
		statement := testutil.CreateTestStatement(t, db, accountID, models.OwnerCombined)

		_, err := svc.Process(context.Background(), accountID, statement.ID)
		testutil.AssertAppError(t, err, "EXTRACTION_FAILED")

		var updated models.Statement
		db.First(&updated, statement.ID)
		if updated.Status != models.StatementStatusFailed {
			t.Errorf("expected failed status, got %s", updated.Status)
		}

		var count int64
		db.Model(&models.Transaction{}).Where("statement_id = ?", statement.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected no transactions, got %d", count)
		}
	})

	t.Run("not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatementService(db, &mockExtractor{})

		_, err := svc.Process(context.Background(), testutil.NewAccountID(), 999999)
		testutil.AssertAppError(t, err, "STATEMENT_NOT_FOUND")
	})

	t.Run("other account's statement is invisible", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatementService(db, &mockExtractor{})
		statement := testutil.CreateTestStatement(t, db, testutil.NewAccountID(), models.OwnerCombined)

		_, err := svc.Process(context.Background(), testutil.NewAccountID(), statement.ID)
		testutil.AssertAppError(t, err, "STATEMENT_NOT_FOUND")
	})
}

func TestGetStatements(t *testing.T) {
	t.Run("lists own statements only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatementService(db, &mockExtractor{})
		accountID := testutil.NewAccountID()
		testutil.CreateTestStatement(t, db, accountID, models.OwnerCombined)
		testutil.CreateTestStatement(t, db, accountID, models.OwnerMember1)
		testutil.CreateTestStatement(t, db, testutil.NewAccountID(), models.OwnerCombined)

		statements, err := svc.GetStatements(accountID)
		testutil.AssertNoError(t, err)
		if len(statements) != 2 {
			t.Errorf("expected 2 statements, got %d", len(statements))
		}
	})
}

func TestGetStatement(t *testing.T) {
	t.Run("includes extracted transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		extractor := &mockExtractor{candidates: []extraction.Candidate{
			{Date: day(2024, time.January, 5), Vendor: "Loblaws", Amount: 4250, Category: "Groceries"},
		}}
		svc := NewStatementService(db, extractor)
		accountID := testutil.NewAccountID()
		statement := testutil.CreateTestStatement(t, db, accountID, models.OwnerCombined)
		_, err := svc.Process(context.Background(), accountID, statement.ID)
		testutil.AssertNoError(t, err)

		got, err := svc.GetStatement(accountID, statement.ID)
		testutil.AssertNoError(t, err)
		if got.ID != statement.ID {
			t.Errorf("expected statement %d, got %d", statement.ID, got.ID)
		}
		if len(got.Transactions) != 1 {
			t.Errorf("expected 1 transaction, got %d", len(got.Transactions))
		}
	})

	t.Run("not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatementService(db, &mockExtractor{})

		_, err := svc.GetStatement(testutil.NewAccountID(), 999999)
		testutil.AssertAppError(t, err, "STATEMENT_NOT_FOUND")
	})
}

func TestDeleteStatement(t *testing.T) {
	t.Run("cascades to extracted transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		extractor := &mockExtractor{candidates: []extraction.Candidate{
			{Date: day(2024, time.January, 5), Vendor: "Loblaws", Amount: 4250, Category: "Groceries"},
			{Date: day(2024, time.January, 6), Vendor: "Metro", Amount: 1800, Category: "Groceries"},
			{Date: day(2024, time.January, 7), Vendor: "Netflix", Amount: 1599, Category: "Subscriptions"},
		}}
		svc := NewStatementService(db, extractor)
		accountID := testutil.NewAccountID()
		statement := testutil.CreateTestStatement(t, db, accountID, models.OwnerCombined)
		_, err := svc.Process(context.Background(), accountID, statement.ID)
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteStatement(accountID, statement.ID))

		var count int64
		db.Model(&models.Transaction{}).Where("statement_id = ?", statement.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected extracted transactions deleted, %d remain", count)
		}

		_, err = svc.GetStatement(accountID, statement.ID)
		testutil.AssertAppError(t, err, "STATEMENT_NOT_FOUND")
	})

	t.Run("not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatementService(db, &mockExtractor{})

		err := svc.DeleteStatement(testutil.NewAccountID(), 999999)
		testutil.AssertAppError(t, err, "STATEMENT_NOT_FOUND")
	})
}
