package controllers

import (
	"net/http"
	"time"

	"mediflow-backend/config"
	"mediflow-backend/models"
	"mediflow-backend/utils"

	"github.com/gin-gonic/gin"
)

// ReportController handles billing analytics
type ReportController struct{}

// BillingSummary represents the billing analytics data
type BillingSummary struct {
	CurrentMonthRevenue   float64          `json:"currentMonthRevenue"`
	MonthGrowth           float64          `json:"monthGrowth"`
	CurrentQuarterRevenue float64          `json:"currentQuarterRevenue"`
	QuarterGrowth         float64          `json:"quarterGrowth"`
	CurrentYearRevenue    float64          `json:"currentYearRevenue"`
	YearGrowth            float64          `json:"yearGrowth"`
	StatusBreakdown       map[string]int64 `json:"statusBreakdown"`
	OutstandingBalance    float64          `json:"outstandingBalance"`
	CollectedAmount       float64          `json:"collectedAmount"`
	TopPatients           []PatientSpend   `json:"topPatients"`
}

type PatientSpend struct {
	Name     string  `json:"name"`
	Invoices int     `json:"invoices"`
	Billed   float64 `json:"billed"`
}

// GetBillingReport assembles revenue, growth and collection analytics from
// the invoice ledger
func (rc *ReportController) GetBillingReport(c *gin.Context) {
	now := time.Now()

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevMonthStart := monthStart.AddDate(0, -1, 0)
	quarterStart := rc.getQuarterStart(now)
	prevQuarterStart := quarterStart.AddDate(0, -3, 0)
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	prevYearStart := yearStart.AddDate(-1, 0, 0)

	summary := BillingSummary{
		CurrentMonthRevenue:   rc.revenueBetween(monthStart, now),
		CurrentQuarterRevenue: rc.revenueBetween(quarterStart, now),
		CurrentYearRevenue:    rc.revenueBetween(yearStart, now),
		StatusBreakdown:       map[string]int64{},
	}

	summary.MonthGrowth = rc.calculateGrowthPercentage(
		summary.CurrentMonthRevenue, rc.revenueBetween(prevMonthStart, monthStart))
	summary.QuarterGrowth = rc.calculateGrowthPercentage(
		summary.CurrentQuarterRevenue, rc.revenueBetween(prevQuarterStart, quarterStart))
	summary.YearGrowth = rc.calculateGrowthPercentage(
		summary.CurrentYearRevenue, rc.revenueBetween(prevYearStart, yearStart))

	type statusRow struct {
		Status string
		Count  int64
	}
	var rows []statusRow
	if err := config.DB.Model(&models.Invoice{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build status breakdown")
		return
	}
	for _, row := range rows {
		summary.StatusBreakdown[row.Status] = row.Count
	}

	config.DB.Model(&models.Invoice{}).
		Where("status IN ?", []string{models.InvoicePending, models.InvoicePartial, models.InvoiceOverdue}).
		Select("COALESCE(SUM(balance_due), 0)").Scan(&summary.OutstandingBalance)

	config.DB.Model(&models.Invoice{}).
		Select("COALESCE(SUM(amount_paid), 0)").Scan(&summary.CollectedAmount)

	if err := config.DB.Model(&models.Invoice{}).
		Select("patient_name as name, COUNT(id) as invoices, SUM(total_amount) as billed").
		Group("patient_name").
		Order("billed DESC").
		Limit(5).
		Scan(&summary.TopPatients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build top patients")
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (rc *ReportController) revenueBetween(start, end time.Time) float64 {
	var revenue float64
	config.DB.Model(&models.Invoice{}).
		Where("issue_date >= ? AND issue_date < ?", start, end).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&revenue)
	return revenue
}

func (rc *ReportController) getQuarterStart(date time.Time) time.Time {
	quarterMonth := time.Month(((int(date.Month())-1)/3)*3 + 1)
	return time.Date(date.Year(), quarterMonth, 1, 0, 0, 0, 0, date.Location())
}

func (rc *ReportController) calculateGrowthPercentage(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return ((current - previous) / previous) * 100
}
