package catalog

import (
	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/cards"
)

func testCatalog() []*cards.CardRecord {
	return []*cards.CardRecord{
		{Code: "01088", Title: "Data Raven", Type: cards.TypeICE, Subtypes: []string{"Sentry", "Tracer", "Observer"}, Faction: "NBN", Side: cards.SideCorp},
		{Code: "01017", Title: "Gabriel Santiago: Consummate Professional", Type: cards.TypeIdentity, Faction: "Criminal", Side: cards.SideRunner},
		{Code: "01054", Title: "Engineered to the Future", Type: cards.TypeIdentity, Faction: "Haas-Bioroid", Side: cards.SideCorp},
		{Code: "01103", Title: "Ice Wall", Type: cards.TypeICE, Subtypes: []string{"Barrier"}, Faction: "Weyland Consortium", Side: cards.SideCorp},
		{Code: "00001", Title: "Wake Alert Lock Line", Type: cards.TypeOperation, Faction: "Neutral", Side: cards.SideCorp},
	}
}
