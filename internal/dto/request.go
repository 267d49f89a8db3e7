package dto

type CreateBookingRequest struct {
	CustomerID int    `json:"customer_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

type RoomRequest struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

type CustomerRequest struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
