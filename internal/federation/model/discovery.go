package models

// KeyStatus in a discovery document: "active" signs traffic now, "next" is
// pre-published for rotation.
type KeyStatus string

const (
	KeyStatusActive KeyStatus = "active"
	KeyStatusNext   KeyStatus = "next"
)

type DiscoveryKey struct {
	Kid       string    `json:"kid"`
	PublicKey string    `json:"public_key"`
	Status    KeyStatus `json:"status"`
	CreatedAt string    `json:"created_at,omitempty"`
	ExpiresAt string    `json:"expires_at,omitempty"`
}

// DiscoveryDocument is the self-signed manifest a host publishes under
// /.well-known/courier/federation.json. The signature covers the canonical
// JSON of the document with the signature fields removed.
type DiscoveryDocument struct {
	Host         string         `json:"host"`
	Version      int            `json:"version"`
	InboxURL     string         `json:"inbox_url"`
	DirectoryURL string         `json:"directory_url"`
	Keys         []DiscoveryKey `json:"keys"`
	GeneratedAt  string         `json:"generated_at"`
	Signature    string         `json:"signature,omitempty"`
	SignatureKid string         `json:"signature_kid,omitempty"`
}

// ActiveKey returns the document's active signing key, if any.
func (d *DiscoveryDocument) ActiveKey() *DiscoveryKey {
	for i := range d.Keys {
		if d.Keys[i].Status == KeyStatusActive {
			return &d.Keys[i]
		}
	}
	return nil
}

// FederationKeyResponse is the legacy single-key response from
// /api/federation/key for hosts without a discovery document.
type FederationKeyResponse struct {
	Host      string `json:"host"`
	PublicKey string `json:"publicKey"`
}

// Envelope is the signed federation payload POSTed to a remote inbox. The
// canonical JSON of this struct is exactly what X-Courier-Sig covers.
type Envelope struct {
	RecipientHandle string `json:"recipient_handle"`
	SenderHandle    string `json:"sender_handle"`
	EncryptedBlob   string `json:"encrypted_blob"`
	MessageID       string `json:"message_id,omitempty"`
	EventType       string `json:"event_type,omitempty"`
	ReactionEmoji   string `json:"reaction_emoji,omitempty"`
}

// ReceiptPayload is the signed body of /api/federation/receipts.
type ReceiptPayload struct {
	RecipientHandle string `json:"recipient_handle"`
	SenderHandle    string `json:"sender_handle,omitempty"`
	MessageID       string `json:"message_id"`
	Type            string `json:"type"`
}
