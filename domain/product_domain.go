package domain

import "errors"

var (
	MessageSuccessGetProduct = "product retrieved successfully"
	MessageFailedGetProduct  = "failed to retrieve product"

	// Copy shown in the scanner UI.
	MessageProductNotFound = "Produk tidak ditemukan di database"
	MessageLookupFailed    = "Terjadi kesalahan saat mencari produk"

	ErrProductNotFound = errors.New("product not found")
	ErrLookupTransport = errors.New("product store unreachable")
	ErrEmptySerial     = errors.New("serial number is empty")
)

type (
	ProductResponse struct {
		ID              string `json:"id"`
		SerialNumber    string `json:"serial_number"`
		ProductName     string `json:"product_name"`
		ProductCode     string `json:"product_code"`
		Packaging       string `json:"packaging"`
		ProductionOrder string `json:"production_order"`
		ProductionDate  string `json:"production_date"`
		ProductionTime  string `json:"production_time"`
		Location        string `json:"location"`
	}
)
