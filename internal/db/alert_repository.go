package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/cse-connect/connect-backend/internal/models"
)

type firestoreAlertRepository struct {
	client *firestore.Client
	alerts *Collection[models.Alert, *models.Alert]
}

// NewFirestoreAlertRepository creates an AlertRepository over alerts/.
func NewFirestoreAlertRepository(client *firestore.Client) AlertRepository {
	return &firestoreAlertRepository{
		client: client,
		alerts: NewCollection[models.Alert](client.Collection(alertsCollection), "createdAt", firestore.Desc),
	}
}

func (r *firestoreAlertRepository) Alerts() Store[models.Alert] {
	return r.alerts
}

func (r *firestoreAlertRepository) SetSMSStatus(ctx context.Context, alertID, status, errMsg string) error {
	var smsError interface{} = errMsg
	if errMsg == "" {
		smsError = firestore.Delete
	}
	_, err := r.client.Collection(alertsCollection).Doc(alertID).Set(ctx, map[string]interface{}{
		"smsStatus": status,
		"smsError":  smsError,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to record sms status on alert '%s': %w", alertID, err)
	}
	return nil
}
