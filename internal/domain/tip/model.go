package tip

import "time"

// Tip is a stored, already-encrypted set of predictions for one user.
type Tip struct {
	ID            string    `json:"id"`
	UserName      string    `json:"user_name"`
	EncryptedData string    `json:"encrypted_data"`
	CreatedAt     time.Time `json:"created_at"`
}

// Submission is the plaintext payload a user asks to have prepared for
// encryption. The password never leaves the request boundary.
type Submission struct {
	UserName  string            `json:"user_name"`
	Tips      map[string]string `json:"tips"`
	Margin    string            `json:"margin"`
	Round     string            `json:"round"`
	CreatedAt string            `json:"created_at"`
}
