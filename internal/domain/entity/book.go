package entity

// Book represents one catalog record. Price, availability and rating are
// opaque display strings as scraped from the source site; they carry no
// numeric semantics anywhere in the system. This weak typing is part of the
// store's contract, not an accident.
type Book struct {
	ID           uint
	Title        string
	Price        string
	Availability string
	Rating       string
}
