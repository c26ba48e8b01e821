package orders

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"arabianx/db"
	"arabianx/globals"
	"arabianx/models"
	"arabianx/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// ReceiptPayload builds the signed QR payload verified at the pickup
// counter: orderID|orderNumber|signature.
func ReceiptPayload(orderID, orderNumber string) string {
	data := orderID + "|" + orderNumber
	return data + "|" + signReceipt(data)
}

// VerifyReceiptPayload checks a scanned payload's signature and returns the
// order id it names.
func VerifyReceiptPayload(payload string) (string, bool) {
	parts := strings.Split(payload, "|")
	if len(parts) != 3 {
		return "", false
	}
	data := parts[0] + "|" + parts[1]
	if !hmac.Equal([]byte(signReceipt(data)), []byte(parts[2])) {
		return "", false
	}
	return parts[0], true
}

func signReceipt(data string) string {
	h := hmac.New(sha256.New, globals.JwtSecret)
	h.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// PrintReceipt renders an order receipt PDF with a QR code for pickup
// verification. Owner or admin only, like GetOrderByID.
func PrintReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var order models.Order
	err := db.OrderCollection.FindOne(r.Context(), bson.M{"orderid": ps.ByName("orderid")}).Decode(&order)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	role := utils.GetRoleFromRequest(r)
	isAdmin := role == models.RoleAdmin || role == models.RoleSuperadmin
	if !isAdmin && order.UserID != "" && order.UserID != utils.GetUserIDFromRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}

	qrPNG, err := qrcode.Encode(ReceiptPayload(order.OrderID, order.OrderNumber), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Arabian Exclusive")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Order: %s", order.OrderNumber))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Customer: %s %s", order.CustomerInfo.Name, order.CustomerInfo.LastName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Delivery: %s", order.DeliveryType))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Items")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	for _, item := range order.Items {
		pdf.Cell(0, 7, fmt.Sprintf("%dx %s - %s ($%.2f)", item.Quantity, item.Brand, item.Name, item.Price))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: $%.2f", order.Total))

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 30, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+order.OrderNumber+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
