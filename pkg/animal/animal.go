package animal

import "errors"

var ErrAnimalNotFound = errors.New("animal not found")

// Species is the closed set of species codes the clinic registers.
type Species string

const (
	SpeciesDog   Species = "C" // Cachorro
	SpeciesCat   Species = "G" // Gato
	SpeciesOther Species = "O" // Outros
)

var speciesNames = map[Species]string{
	SpeciesDog:   "Cachorro",
	SpeciesCat:   "Gato",
	SpeciesOther: "Outros",
}

// DisplayName returns the human-readable species name for the code.
func (s Species) DisplayName() string {
	if name, ok := speciesNames[s]; ok {
		return name
	}
	return "Desconhecido"
}

func (s Species) Valid() bool {
	_, ok := speciesNames[s]
	return ok
}

// Animal is a pet owned by a Client. Age and Weight are optional.
// OwnerName and OwnerTaxId are display fields loaded eagerly with the record.
type Animal struct {
	Id         int
	Name       string
	Species    Species
	Breed      string
	Age        *int
	Weight     *float64
	OwnerId    int
	OwnerName  string
	OwnerTaxId string
}
