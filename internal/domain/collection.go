package domain

// Collection is a named bag of stores plus organizational metadata: the field
// template that scopes its custom-field schema, the stores themselves, and the
// folios that sub-group them. The persistence layer reads and writes whole
// collection snapshots, so stores and folios are embedded.
type Collection struct {
	Syncable
	OwnerID  string   `json:"owner_id"`
	Name     string   `json:"name"`
	Template Template `json:"template"`
	Stores   []Store  `json:"stores"`
	Folios   []Folio  `json:"folios"`
}

// FindStore returns a pointer to the store with the given id, or nil.
func (c *Collection) FindStore(storeID string) *Store {
	for i := range c.Stores {
		if c.Stores[i].ID == storeID {
			return &c.Stores[i]
		}
	}
	return nil
}

// AddStore appends a store to the collection.
// Capacity is enforced at the service boundary, not here.
func (c *Collection) AddStore(store Store) {
	c.Stores = append(c.Stores, store)
	c.Touch()
}

// RemoveStore removes a store by id. Returns false if not present.
// Folio references to the removed store are the caller's responsibility.
func (c *Collection) RemoveStore(storeID string) bool {
	for i := range c.Stores {
		if c.Stores[i].ID == storeID {
			c.Stores = append(c.Stores[:i], c.Stores[i+1:]...)
			c.Touch()
			return true
		}
	}
	return false
}

// FindFolio returns a pointer to the folio with the given id, or nil.
func (c *Collection) FindFolio(folioID string) *Folio {
	for i := range c.Folios {
		if c.Folios[i].ID == folioID {
			return &c.Folios[i]
		}
	}
	return nil
}

// RemoveFolio removes a folio by id. Returns false if not present.
func (c *Collection) RemoveFolio(folioID string) bool {
	for i := range c.Folios {
		if c.Folios[i].ID == folioID {
			c.Folios = append(c.Folios[:i], c.Folios[i+1:]...)
			c.Touch()
			return true
		}
	}
	return false
}
