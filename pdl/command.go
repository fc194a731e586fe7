package pdl

// Command is a named operation within a domain: an ordered input
// parameter list, an ordered return list, and an optional redirect to
// another domain's implementation.
type Command struct {
	Description  []string
	Experimental bool
	Deprecated   bool
	Name         string
	Redirect     *Redirect
	Parameters   []*Param
	Returns      []*Param

	// Pos is the source position of the declaration.
	Pos Pos
}

// Event is a named one-way notification with parameters.
type Event struct {
	Description  []string
	Experimental bool
	Deprecated   bool
	Name         string
	Parameters   []*Param

	// Pos is the source position of the declaration.
	Pos Pos
}

// Redirect points a command at the domain that actually implements it.
type Redirect struct {
	Description []string
	To          string
	Pos         Pos
}
