package db

import (
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// IsDuplicateKeyError detects a unique-index violation on insert.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if we, ok := err.(mongo.WriteException); ok {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	return mongo.IsDuplicateKeyError(err)
}

// IsDuplicateKeyOnIndex reports whether err is a duplicate-key error raised
// by the named unique index. The server only exposes the index name inside
// the error message, so callers that need to tell an orderNumber collision
// from a paymentInfo.mercadoPagoId duplicate match on it here.
func IsDuplicateKeyOnIndex(err error, index string) bool {
	return IsDuplicateKeyError(err) && strings.Contains(err.Error(), index)
}
