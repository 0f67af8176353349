package models

import "time"

// Category classifies an activity and maps 1:1 to a goal field on the user.
// Values follow the stored codes.
type Category string

const (
	CategoryInterna  Category = "Interna" // internal volunteering
	CategoryExterna  Category = "Externa" // external volunteering
	CategoryTalleres Category = "Taller"
	CategoryChat     Category = "Chat" // english chat
)

// Categories lists the four known categories in their reporting order.
var Categories = []Category{CategoryInterna, CategoryExterna, CategoryTalleres, CategoryChat}

func (c Category) Valid() bool {
	switch c {
	case CategoryInterna, CategoryExterna, CategoryTalleres, CategoryChat:
		return true
	}
	return false
}

type Modality string

const (
	Presencial Modality = "P"
	Virtual    Modality = "V"
)

type Activity struct {
	ID            int64
	Titulo        string
	Descripcion   string
	Tipo          Category
	Fecha         time.Time
	DuracionHoras float64
	Modalidad     Modality
	Organizacion  string
	Facilitador   string
	CreadorID     int64
	EnCatalogo    bool
	IsActive      bool
	CreatedAt     time.Time
}
