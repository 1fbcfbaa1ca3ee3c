package cache

// Keyer derives cache keys. Implementations must return the same key for the
// same inputs across processes.
type Keyer interface {
	// SnapshotKey addresses the solved snapshot of a scene whose inputs hash
	// to contentHash.
	SnapshotKey(contentHash string, opts SnapshotKeyOpts) string

	// ArtifactKey addresses one rendered output of a snapshot.
	ArtifactKey(contentHash string, opts ArtifactKeyOpts) string
}

// SnapshotKeyOpts are the solve parameters that change a snapshot.
type SnapshotKeyOpts struct {
	Width  float64 `json:"w"`
	Height float64 `json:"h"`
	RawIDs bool    `json:"raw,omitempty"`
}

// ArtifactKeyOpts are the render parameters that change an artifact.
type ArtifactKeyOpts struct {
	Snapshot SnapshotKeyOpts `json:"snap"`
	Format   string          `json:"fmt"`
	Outline  bool            `json:"outline,omitempty"`
	IDs      bool            `json:"ids,omitempty"`
	Detailed bool            `json:"detailed,omitempty"`
	Scale    float64         `json:"scale,omitempty"`
}

// DefaultKeyer hashes the key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SnapshotKey returns "snapshot:<hash>".
func (DefaultKeyer) SnapshotKey(contentHash string, opts SnapshotKeyOpts) string {
	return hashKey("snapshot", contentHash, opts)
}

// ArtifactKey returns "artifact:<format>:<hash>".
func (DefaultKeyer) ArtifactKey(contentHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, contentHash, opts)
}

var _ Keyer = DefaultKeyer{}
