package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brtdigital/remesa-backend/internal/models"
)

// transactionIDPrefix is the fixed prefix of every business transaction ID.
const transactionIDPrefix = "BRT"

// ComposeTransactionID builds the business identifier for a transfer,
// e.g. "BRT-DS250901-00001". The two letters are the first rune of the
// source and destination currency names, casing kept as stored.
func ComposeTransactionID(sourceCurrencyName, destCurrencyName string, day time.Time, seq int64) string {
	return fmt.Sprintf("%s-%c%c%s-%05d",
		transactionIDPrefix,
		firstRune(sourceCurrencyName),
		firstRune(destCurrencyName),
		day.Format("060102"),
		seq,
	)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 'X'
}

// NextSellerID picks the seller for a new transfer: the eligible user after
// the last assigned one in user-ID order with wrap-around, or a random
// eligible user when there is no prior assignment or the prior seller left
// the pool. Empty result means no eligible sellers exist.
func NextSellerID(eligible []models.User, lastSellerID string) string {
	if len(eligible) == 0 {
		return ""
	}
	if lastSellerID != "" {
		for i, u := range eligible {
			if u.UserID == lastSellerID {
				return eligible[(i+1)%len(eligible)].UserID
			}
		}
	}
	return eligible[rand.Intn(len(eligible))].UserID
}
