package domain

// Unit is one catalog entry: the source text of a block at a stable
// structural position, plus whatever processed text has been produced for
// it so far.
type Unit struct {
	ContextID string
	Source    string
	// Processed is empty until the unit has been filled at least once.
	// When the source changes afterwards the text is retained and the
	// unit is marked stale instead.
	Processed string
	Stale     bool
	Obsolete  bool
}

// Kind returns the block kind encoded in the unit's context ID.
func (u *Unit) Kind() BlockKind {
	return KindFromContextID(u.ContextID)
}

// Complete reports whether the unit carries a current processed text.
func (u *Unit) Complete() bool {
	return u.Processed != "" && !u.Stale && !u.Obsolete
}

// CatalogStats aggregates unit counts by status.
type CatalogStats struct {
	Total        int `json:"total"`
	Complete     int `json:"complete"`
	PendingNew   int `json:"pending_new"`
	PendingStale int `json:"pending_stale"`
	Obsolete     int `json:"obsolete"`
}

// ReconcileResult reports what a reconciliation pass did.
type ReconcileResult struct {
	Added       int `json:"added"`
	Updated     int `json:"updated"`
	StaleMarked int `json:"stale_marked"`
	Purged      int `json:"purged"`
}

// Catalog is the durable table of translation units for one document,
// keyed by context ID. At most one non-obsolete unit exists per ID.
// Reconcile and ResetSeed are the only writers of unit lifecycle state.
// A Catalog instance is not safe for concurrent use; each in-flight
// document owns exactly one.
type Catalog struct {
	// Language is the BCP 47 tag stored in the catalog metadata.
	Language string

	units     []*Unit
	index     map[string]*Unit
	skipKinds map[BlockKind]bool
}

// NewCatalog creates an empty catalog with the default skip set.
func NewCatalog(language string) *Catalog {
	return &Catalog{
		Language:  language,
		index:     make(map[string]*Unit),
		skipKinds: DefaultSkipKinds,
	}
}

// SetSkipKinds replaces the skip set. Nil restores the default.
func (c *Catalog) SetSkipKinds(kinds map[BlockKind]bool) {
	if kinds == nil {
		kinds = DefaultSkipKinds
	}
	c.skipKinds = kinds
}

// Skipped reports whether a kind is exempt from processing.
func (c *Catalog) Skipped(kind BlockKind) bool {
	return c.skipKinds[kind]
}

// Add appends a unit, typically while loading a persisted catalog.
// Preserves insertion order. Non-obsolete duplicates are rejected.
func (c *Catalog) Add(u *Unit) error {
	if u.ContextID == "" {
		return ErrInvalidInput
	}
	if !u.Obsolete {
		if _, ok := c.index[u.ContextID]; ok {
			return ErrAlreadyExists
		}
		c.index[u.ContextID] = u
	}
	c.units = append(c.units, u)
	return nil
}

// Get returns the non-obsolete unit for a context ID.
func (c *Catalog) Get(contextID string) (*Unit, bool) {
	u, ok := c.index[contextID]
	return u, ok
}

// Units returns all units in insertion order. The slice is shared; callers
// must not reorder it.
func (c *Catalog) Units() []*Unit {
	return c.units
}

// Len returns the number of stored units, obsolete included.
func (c *Catalog) Len() int {
	return len(c.units)
}

// Reconcile synchronizes the catalog with the latest segmentation.
// For every block: absent IDs are inserted, skip-kind sources are updated
// silently, changed sources are marked stale (processed text retained),
// unchanged sources are left alone. Units whose ID was not visited are
// marked obsolete and purged in the same pass. Idempotent for identical
// input.
func (c *Catalog) Reconcile(blocks []Block) ReconcileResult {
	var res ReconcileResult
	seen := make(map[string]bool, len(blocks))

	for _, b := range blocks {
		id := b.ContextID()
		seen[id] = true

		u, ok := c.index[id]
		if !ok {
			u = &Unit{ContextID: id, Source: b.Text}
			c.index[id] = u
			c.units = append(c.units, u)
			res.Added++
			continue
		}

		if c.skipKinds[b.Kind] {
			if u.Source != b.Text {
				u.Source = b.Text
				res.Updated++
			}
			continue
		}

		if u.Source != b.Text {
			u.Source = b.Text
			u.Stale = true
			res.Updated++
			res.StaleMarked++
		}
	}

	// Two-phase: mark everything unvisited, then compact.
	for _, u := range c.units {
		if !seen[u.ContextID] {
			u.Obsolete = true
		}
	}
	res.Purged = c.purgeObsolete()

	return res
}

// ResetSeed discards the entire store and rebuilds it from the given
// blocks, seeding processed text with the source text for processable
// kinds. Used after structural edits where the document's own shape
// changed; deliberately distinct from Reconcile.
func (c *Catalog) ResetSeed(blocks []Block) {
	c.units = nil
	c.index = make(map[string]*Unit, len(blocks))

	for _, b := range blocks {
		id := b.ContextID()
		if _, ok := c.index[id]; ok {
			continue
		}
		u := &Unit{ContextID: id, Source: b.Text}
		if !c.skipKinds[b.Kind] {
			u.Processed = b.Text
		}
		c.index[id] = u
		c.units = append(c.units, u)
	}
}

// Pending returns, in document order, the units that still need processing:
// processable kind, not obsolete, and either never filled or stale.
func (c *Catalog) Pending() []*Unit {
	var pending []*Unit
	for _, u := range c.units {
		if u.Obsolete || c.skipKinds[u.Kind()] {
			continue
		}
		if u.Processed == "" || u.Stale {
			pending = append(pending, u)
		}
	}
	return pending
}

// StaleUnits returns the non-obsolete units marked stale.
func (c *Catalog) StaleUnits() []*Unit {
	var stale []*Unit
	for _, u := range c.units {
		if !u.Obsolete && u.Stale {
			stale = append(stale, u)
		}
	}
	return stale
}

// MarkComplete clears the stale flag after the orchestrator has filled the
// unit. Must be called exactly once per successfully processed unit.
func (c *Catalog) MarkComplete(u *Unit) {
	u.Stale = false
}

// Stats aggregates unit counts by status.
func (c *Catalog) Stats() CatalogStats {
	var s CatalogStats
	for _, u := range c.units {
		if u.Obsolete {
			s.Obsolete++
			continue
		}
		s.Total++
		switch {
		case u.Stale:
			s.PendingStale++
		case u.Processed != "":
			s.Complete++
		default:
			s.PendingNew++
		}
	}
	return s
}

func (c *Catalog) purgeObsolete() int {
	kept := c.units[:0]
	purged := 0
	for _, u := range c.units {
		if u.Obsolete {
			if c.index[u.ContextID] == u {
				delete(c.index, u.ContextID)
			}
			purged++
			continue
		}
		kept = append(kept, u)
	}
	c.units = kept
	return purged
}
