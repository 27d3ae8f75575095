package dto

// DeletionStatsResponse mirrors the pre-deletion confirmation screen:
// everything that will disappear with the account.
type DeletionStatsResponse struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	SentMessages     int64  `json:"sent_messages"`
	ReceivedMessages int64  `json:"received_messages"`
	TotalMessages    int64  `json:"total_messages"`
	Notifications    int64  `json:"notifications"`
	MessageHistories int64  `json:"message_histories"`
	TotalDataPoints  int64  `json:"total_data_points"`
}

type DeleteAccountResponse struct {
	Deleted bool `json:"deleted"`
}
