package orders

import (
	"context"
	"net/http"
	"time"

	"arabianx/db"
	"arabianx/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GetOrderStats aggregates per-status counts, revenue over completed orders,
// and the number of orders placed since local midnight.
func GetOrderStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	counts := map[string]int64{}
	for _, status := range []string{StatusPending, StatusConfirmed, StatusReady, StatusCompleted} {
		n, err := db.OrderCollection.CountDocuments(ctx, bson.M{"status": status})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching stats")
			return
		}
		counts[status] = n
	}

	total, err := db.OrderCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching stats")
		return
	}

	revenue, err := completedRevenue(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching stats")
		return
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := db.OrderCollection.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": midnight}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching stats")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"totalOrders":     total,
		"pendingOrders":   counts[StatusPending],
		"confirmedOrders": counts[StatusConfirmed],
		"readyOrders":     counts[StatusReady],
		"completedOrders": counts[StatusCompleted],
		"totalRevenue":    revenue,
		"todayOrders":     today,
	})
}

func completedRevenue(ctx context.Context) (float64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"status": StatusCompleted}},
		{"$group": bson.M{"_id": nil, "revenue": bson.M{"$sum": "$total"}}},
	}

	cursor, err := db.OrderCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var out []struct {
		Revenue float64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &out); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].Revenue, nil
}
