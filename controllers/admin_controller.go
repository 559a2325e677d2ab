package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/misha4322/ps-server/pkg/resp"
	"github.com/misha4322/ps-server/services"
	"github.com/misha4322/ps-server/ws"
)

type AdminController struct {
	Svc  *services.OrderService
	Feed *ws.OrderFeed
}

func NewAdminController(s *services.OrderService, feed *ws.OrderFeed) *AdminController {
	return &AdminController{Svc: s, Feed: feed}
}

// GET /api/admin/orders
func (h *AdminController) ListOrders(c *gin.Context) {
	orders, err := h.Svc.ListAll()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, orders)
}

// GET /api/admin/orders/:id
func (h *AdminController) GetOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}
	order, err := h.Svc.GetForAdmin(uint(orderID))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// GET /api/admin/export/orders
func (h *AdminController) ExportOrders(c *gin.Context) {
	orders, err := h.Svc.ListAll()
	if err != nil {
		resp.Error(c, err)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		resp.ServerError(c)
		return
	}

	headers := []string{"ID", "CreatedAt", "Email", "Phone", "Total", "Status", "Items"}
	headerRow := sheet.AddRow()
	for _, head := range headers {
		headerRow.AddCell().SetValue(head)
	}

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.ID)
		row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(o.UserEmail)
		row.AddCell().SetValue(o.Phone)
		row.AddCell().SetValue(o.Total)
		row.AddCell().SetValue(o.Status)
		row.AddCell().SetValue(len(o.Items))
	}

	c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")

	if err := file.Write(c.Writer); err != nil {
		resp.ServerError(c)
		return
	}
}

// GET /api/admin/feed
func (h *AdminController) OrderFeed(c *gin.Context) {
	h.Feed.Handle(c)
}
