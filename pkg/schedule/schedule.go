package schedule

// CalendarEvent is one entry of the calendar feed: either a booked
// appointment or a synthesized open slot. Start is local clinic time in
// YYYY-MM-DDTHH:MM:SS form, no offset suffix; the calendar widget on the
// other end expects exactly that.
type CalendarEvent struct {
	Id    string `json:"id"`
	Title string `json:"title"`
	Start string `json:"start"`
	Color string `json:"color"`
}

// BusinessHours are the bookable hours of a clinic day. No slot at 12: lunch.
var BusinessHours = []int{8, 9, 10, 11, 13, 14, 15, 16}

const (
	// HorizonDays is how many days ahead the calendar feed covers,
	// counting from today.
	HorizonDays = 7

	startLayout = "2006-01-02T15:04:05"

	availableTitle = "Available"

	bookedColor    = "#dc3545"
	availableColor = "#28a745"
)
