package domain

// ItineraryEntry is one activity on the trip plan. Date is a calendar day
// in ISO form (2006-01-02); ordering within a day is insertion order.
type ItineraryEntry struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

type ItineraryDay struct {
	Date    string           `json:"date"`
	Entries []ItineraryEntry `json:"entries"`
}
