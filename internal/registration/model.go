package registration

// User is the acting user behind a mutation, as seen by the chat layer.
// Owner checks match Username or Alias against a slot's owner.
type User struct {
	Username string
	Alias    string
	IsAdmin  bool
}

// SlotRecord is the parsed form of a slot header line. DateVenue is left
// blank by the parser and filled in from parsing context. Capacity is -1
// when the header did not declare one.
type SlotRecord struct {
	Label     string
	DateVenue string
	Time      string
	Capacity  int
	Owner     string
	ExtraCost int
}

// PlayerEntry is the parsed form of a player line.
type PlayerEntry struct {
	Name    string
	Paid    bool
	Pending bool
	Reserve bool
}
