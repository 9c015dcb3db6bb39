package rpc

type Empty struct{}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	Username    string `json:"username"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type AccountResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type LoginResponse struct {
	Account     AccountResponse `json:"account"`
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
}

type Book struct {
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Pages  int32  `json:"pages"`
}

type BookList struct {
	Books []Book `json:"books"`
}

type ISBNRequest struct {
	ISBN string `json:"isbn"`
}

type SnapshotRequest struct {
	Key string `json:"key,omitempty"`
}

type SnapshotResponse struct {
	Key   string `json:"key"`
	Books int32  `json:"books"`
}

// Progress is a user's reading state.
type Progress struct {
	Username         string   `json:"username"`
	Active           bool     `json:"active"`
	CurrentlyReading []string `json:"currently_reading"`
	ReadBooks        []string `json:"read_books"`
}
