package model

// Governorate is static reference geography with bilingual names.
type Governorate struct {
	ID     uint64 `db:"id" json:"id"`
	NameAR string `db:"name_ar" json:"name_ar"`
	NameEN string `db:"name_en" json:"name_en"`
}

// District belongs to a governorate.
type District struct {
	ID            uint64 `db:"id" json:"id"`
	GovernorateID uint64 `db:"governorate_id" json:"governorate_id"`
	NameAR        string `db:"name_ar" json:"name_ar"`
	NameEN        string `db:"name_en" json:"name_en"`
}
