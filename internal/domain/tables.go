package domain

var Tables = []interface{}{
	&User{},
	&FreezerType{},
	&Freezer{},
	&ProductType{},
	&Product{},
}
