package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderID int) ([]byte, error)
}

// DefaultQRGenerator encodes a link to the review page of an order as a PNG.
type DefaultQRGenerator struct {
	BaseURL string
	Size    int
}

func (g DefaultQRGenerator) Generate(orderID int) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(g.Link(orderID), qrcode.Medium, size)
}

func (g DefaultQRGenerator) Link(orderID int) string {
	return fmt.Sprintf("%s/review.html?order_id=%d", g.BaseURL, orderID)
}
