package service

import (
	"testing"
	"time"

	"finance_tracker/internal/domain"
)

func TestSummaryEmptyUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTransactionService(db)
	userID := createTestUser(t, db, "empty@example.com")

	summary, err := svc.GetSummary(userID)
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if summary.TotalIncome != 0 || summary.TotalExpense != 0 || summary.Balance != 0 || summary.TransactionCount != 0 {
		t.Errorf("Expected all-zero summary, got %+v", summary)
	}
}

// The reference scenario: (income 1000 on 2024-01-05), (expense 300 on
// 2024-01-20), (income 500 on 2024-02-01).
func TestSummaryAndMonthlyFlowScenario(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTransactionService(db)
	userID := createTestUser(t, db, "scenario@example.com")
	categoryID := createTestCategory(t, db, userID, "General")

	createTestTransaction(t, db, userID, categoryID, domain.TypeIncome, 1000,
		time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	createTestTransaction(t, db, userID, categoryID, domain.TypeExpense, 300,
		time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))
	createTestTransaction(t, db, userID, categoryID, domain.TypeIncome, 500,
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

	summary, err := svc.GetSummary(userID)
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if summary.TotalIncome != 1500 {
		t.Errorf("Expected income 1500, got %f", summary.TotalIncome)
	}
	if summary.TotalExpense != 300 {
		t.Errorf("Expected expense 300, got %f", summary.TotalExpense)
	}
	if summary.Balance != 1200 {
		t.Errorf("Expected balance 1200, got %f", summary.Balance)
	}
	if summary.TransactionCount != 3 {
		t.Errorf("Expected count 3, got %d", summary.TransactionCount)
	}

	flows, err := svc.GetMonthlyFlow(userID, 2024)
	if err != nil {
		t.Fatalf("GetMonthlyFlow failed: %v", err)
	}
	want := []MonthlyFlow{
		{Month: "01", Year: 2024, Income: 1000, Expense: 300, Balance: 700},
		{Month: "02", Year: 2024, Income: 500, Expense: 0, Balance: 500},
	}
	if len(flows) != len(want) {
		t.Fatalf("Expected %d months, got %d: %+v", len(want), len(flows), flows)
	}
	for i, w := range want {
		if flows[i] != w {
			t.Errorf("Month %d: expected %+v, got %+v", i, w, flows[i])
		}
	}
}

func TestMonthlyFlowSkipsEmptyMonths(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTransactionService(db)
	userID := createTestUser(t, db, "sparse@example.com")
	categoryID := createTestCategory(t, db, userID, "General")

	// Only March and November carry data
	createTestTransaction(t, db, userID, categoryID, domain.TypeExpense, 80,
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	createTestTransaction(t, db, userID, categoryID, domain.TypeIncome, 200,
		time.Date(2024, 11, 2, 0, 0, 0, 0, time.UTC))

	flows, err := svc.GetMonthlyFlow(userID, 2024)
	if err != nil {
		t.Fatalf("GetMonthlyFlow failed: %v", err)
	}
	if len(flows) != 2 {
		t.Fatalf("Expected 2 months, got %d: %+v", len(flows), flows)
	}
	if flows[0].Month != "03" || flows[1].Month != "11" {
		t.Errorf("Expected months 03 and 11, got %s and %s", flows[0].Month, flows[1].Month)
	}
	for _, flow := range flows {
		if flow.Balance != flow.Income-flow.Expense {
			t.Errorf("Month %s: balance %f != income %f - expense %f",
				flow.Month, flow.Balance, flow.Income, flow.Expense)
		}
	}
}

func TestMonthlyFlowYearBoundary(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTransactionService(db)
	userID := createTestUser(t, db, "boundary@example.com")
	categoryID := createTestCategory(t, db, userID, "General")

	// 2024-01-01T01:00+03:00 is still 2023 in UTC and must not appear in 2024
	zone := time.FixedZone("UTC+3", 3*60*60)
	createTestTransaction(t, db, userID, categoryID, domain.TypeExpense, 10,
		time.Date(2024, 1, 1, 1, 0, 0, 0, zone))
	createTestTransaction(t, db, userID, categoryID, domain.TypeIncome, 55,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	flows, err := svc.GetMonthlyFlow(userID, 2024)
	if err != nil {
		t.Fatalf("GetMonthlyFlow failed: %v", err)
	}
	if len(flows) != 1 {
		t.Fatalf("Expected 1 month in 2024, got %d: %+v", len(flows), flows)
	}
	if flows[0].Month != "01" || flows[0].Income != 55 || flows[0].Expense != 0 {
		t.Errorf("Unexpected 2024 flow: %+v", flows[0])
	}

	previous, err := svc.GetMonthlyFlow(userID, 2023)
	if err != nil {
		t.Fatalf("GetMonthlyFlow failed: %v", err)
	}
	if len(previous) != 1 || previous[0].Month != "12" || previous[0].Expense != 10 {
		t.Errorf("Expected the shifted transaction in December 2023, got %+v", previous)
	}
}

func TestReportsScopedToUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTransactionService(db)
	userID := createTestUser(t, db, "scoped@example.com")
	strangerID := createTestUser(t, db, "scoped-other@example.com")
	mine := createTestCategory(t, db, userID, "Mine")
	theirs := createTestCategory(t, db, strangerID, "Theirs")

	createTestTransaction(t, db, userID, mine, domain.TypeIncome, 100,
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	createTestTransaction(t, db, strangerID, theirs, domain.TypeIncome, 9999,
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	summary, err := svc.GetSummary(userID)
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if summary.TotalIncome != 100 || summary.TransactionCount != 1 {
		t.Errorf("Summary leaked foreign data: %+v", summary)
	}

	flows, err := svc.GetMonthlyFlow(userID, 2024)
	if err != nil {
		t.Fatalf("GetMonthlyFlow failed: %v", err)
	}
	if len(flows) != 1 || flows[0].Income != 100 {
		t.Errorf("Monthly flow leaked foreign data: %+v", flows)
	}
}
