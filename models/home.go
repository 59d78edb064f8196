package models

// HomeRow is a homepage layout row stored in the config collection,
// type "home_row1" or "home_row2". Product ids are stored as hex strings
// because the admin panel submits them that way.
type HomeRow struct {
	Type     string   `bson:"type" json:"type"`
	Title    string   `bson:"title" json:"title"`
	Products []string `bson:"products" json:"products"`
}

// MaxHomeRowProducts caps how many products a homepage row may carry.
const MaxHomeRowProducts = 7
