package orderControllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/nurilloh-an/telegram-mini-app/adminauth"
	"github.com/nurilloh-an/telegram-mini-app/apperr"
	"github.com/nurilloh-an/telegram-mini-app/middleware"
	"github.com/nurilloh-an/telegram-mini-app/models"
)

// ExportOrdersToExcelHandler streams all orders as an .xlsx download (admin).
func ExportOrdersToExcelHandler(db *gorm.DB, res *adminauth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		telegramID, phone := middleware.CallerIdentity(c)
		if err := res.EnsureAdmin(db, telegramID, phone); err != nil {
			c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
			return
		}

		orders, err := ListOrders(db, c.Query("status"))
		if err != nil {
			c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		// Header row
		headers := []string{
			"ID", "Customer", "Phone", "Status", "TotalPrice",
			"Items", "Comment", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		// Data rows
		for _, order := range orders {
			row := sheet.AddRow()

			row.AddCell().SetValue(order.ID)
			row.AddCell().SetValue(order.User.Name)
			row.AddCell().SetValue(order.User.PhoneNumber)
			row.AddCell().SetValue(string(order.Status))
			row.AddCell().SetValue(order.TotalPrice.StringFixed(2))
			row.AddCell().SetValue(formatItems(order.Items))
			row.AddCell().SetValue(order.Comment)
			row.AddCell().SetValue(order.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}

func formatItems(items []models.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%d x %s", item.Quantity, item.ProductName))
	}
	return strings.Join(parts, ", ")
}
