package db_test

import (
	"errors"
	"testing"

	"arabianx/db"

	"go.mongodb.org/mongo-driver/mongo"
)

func dupKeyError(index string) error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{
		Code:    11000,
		Message: "E11000 duplicate key error collection: arabianx.orders index: " + index + " dup key: { : \"x\" }",
	}}}
}

func TestIsDuplicateKeyError(t *testing.T) {
	if !db.IsDuplicateKeyError(dupKeyError("unique_order_number")) {
		t.Error("11000 write error not detected")
	}
	if db.IsDuplicateKeyError(nil) {
		t.Error("nil misclassified")
	}
	if db.IsDuplicateKeyError(errors.New("connection reset")) {
		t.Error("plain error misclassified")
	}
	if db.IsDuplicateKeyError(mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 121}}}) {
		t.Error("non-11000 write error misclassified")
	}
}

// An orderNumber collision and a payment-id duplicate both surface as code
// 11000; only the index name tells them apart, and the webhook path depends
// on that distinction.
func TestIsDuplicateKeyOnIndex(t *testing.T) {
	orderNumDup := dupKeyError(db.IdxUniqueOrderNumber)
	paymentDup := dupKeyError(db.IdxUniqueMPPayment)

	if !db.IsDuplicateKeyOnIndex(orderNumDup, db.IdxUniqueOrderNumber) {
		t.Error("orderNumber dup not matched to its index")
	}
	if db.IsDuplicateKeyOnIndex(orderNumDup, db.IdxUniqueMPPayment) {
		t.Error("orderNumber dup misattributed to the payment index")
	}
	if !db.IsDuplicateKeyOnIndex(paymentDup, db.IdxUniqueMPPayment) {
		t.Error("payment dup not matched to its index")
	}
	if db.IsDuplicateKeyOnIndex(errors.New("index: unique_mp_payment"), db.IdxUniqueMPPayment) {
		t.Error("non-duplicate error must not match any index")
	}
}
