// Package content provides the static question material: which footballers
// have worn the shirt of both clubs in a given pair, and each club's
// best-known players. Lookups are read-only, so no locking is needed.
package content

// Provider resolves acceptable answers and rosters for club pairs. It is a
// struct (rather than package-level functions) so the orchestrator can take
// it by interface and tests can swap in a fixture.
type Provider struct{}

func NewProvider() *Provider { return &Provider{} }

var teams = []string{
	"Barcelona",
	"Real Madrid",
	"Manchester City",
	"PSG",
	"Bayern Munich",
	"Liverpool",
	"Chelsea",
	"Arsenal",
}

// transfers maps "A-B" club pairs to players with spells at both clubs.
// Lookups must try both orderings of the key.
var transfers = map[string][]string{
	"Barcelona-Real Madrid": {
		"Luis Figo", "Ronaldo Nazario", "Michael Laudrup", "Saul Niguez", "Dani Alves",
	},
	"Manchester City-Bayern Munich": {
		"Leroy Sané", "Jerome Boateng", "Claudio Bravo", "Dante", "Shay Given",
	},
	"Liverpool-Chelsea": {
		"Fernando Torres", "Raul Meireles", "Joe Cole", "Glen Johnson", "Yossi Benayoun",
	},
	"PSG-Arsenal": {
		"David Seaman", "Jerome Rothen", "Nicolas Anelka", "Mathieu Flamini", "Adrien Rabiot",
	},
	"Barcelona-Manchester City": {
		"Yaya Toure", "Eric Garcia", "Ferran Torres", "Claudio Bravo", "Thierry Henry",
	},
	"Real Madrid-Bayern Munich": {
		"James Rodriguez", "Toni Kroos", "Xabi Alonso", "Arjen Robben", "Owen Hargreaves",
	},
	"Liverpool-Bayern Munich": {
		"Sadio Mané", "Thiago Alcantara", "Xherdan Shaqiri", "Emre Can", "Pepe Reina",
	},
	"Chelsea-PSG": {
		"David Luiz", "Thiago Silva", "Jorginho", "Marco Verratti", "Edinson Cavani",
	},
	"Arsenal-Barcelona": {
		"Thierry Henry", "Alex Song", "Cesc Fabregas", "Alexis Sanchez", "Hector Bellerin",
	},
	"PSG-Bayern Munich": {
		"Kingsley Coman", "Julian Draxler", "Eric Maxim Choupo-Moting", "Juan Bernat", "Thiago Motta",
	},
	"Barcelona-Bayern Munich": {
		"Robert Lewandowski", "Philippe Coutinho", "Arturo Vidal", "Thiago Alcantara", "Douglas Costa",
	},
	"Liverpool-Arsenal": {
		"Alex Oxlade-Chamberlain", "Pepe Reina", "Luis Suarez", "Raheem Sterling", "Andy Carroll",
	},
	"Liverpool-Barcelona": {
		"Luis Suarez", "Philippe Coutinho", "Gini Wijnaldum", "Adriano", "Javier Mascherano",
	},
	"Liverpool-Manchester City": {
		"Raheem Sterling", "James Milner", "Mario Balotelli", "Kolo Toure", "Scott Carson",
	},
	"Chelsea-Manchester City": {
		"Frank Lampard", "Raheem Sterling", "Cole Palmer", "Riyad Mahrez", "Joao Cancelo",
	},
	"Real Madrid-Manchester City": {
		"Aymeric Laporte", "Brahim Diaz", "Ferran Torres", "Julian Alvarez", "Joao Cancelo",
	},
}

var rosters = map[string][]string{
	"Barcelona":       {"Lionel Messi", "Gerard Pique", "Sergio Busquets", "Jordi Alba", "Frenkie de Jong"},
	"Real Madrid":     {"Cristiano Ronaldo", "Sergio Ramos", "Luka Modric", "Toni Kroos", "Karim Benzema"},
	"Manchester City": {"Kevin De Bruyne", "Raheem Sterling", "Sergio Aguero", "Riyad Mahrez", "Bernardo Silva"},
	"PSG":             {"Neymar Jr", "Kylian Mbappe", "Angel Di Maria", "Marco Verratti", "Marquinhos"},
	"Bayern Munich":   {"Robert Lewandowski", "Thomas Muller", "Manuel Neuer", "Joshua Kimmich", "Leon Goretzka"},
	"Liverpool":       {"Mohamed Salah", "Sadio Mane", "Roberto Firmino", "Virgil van Dijk", "Jordan Henderson"},
	"Chelsea":         {"Eden Hazard", "N'Golo Kante", "Timo Werner", "Mason Mount", "Thiago Silva"},
	"Arsenal":         {"Pierre-Emerick Aubameyang", "Alexandre Lacazette", "Bukayo Saka", "Thomas Partey", "Gabriel Martinelli"},
}

// decoys are household names the bot throws out when it "guesses" wrong.
var decoys = []string{"Messi", "Ronaldo", "Neymar", "Haaland", "Benzema"}

// AllTeams returns the selectable clubs in a fixed order.
func (p *Provider) AllTeams() []string {
	out := make([]string, len(teams))
	copy(out, teams)
	return out
}

// AcceptableAnswers returns the players with spells at both clubs, checking
// both orderings of the pair. Nil means the pairing has no known transfers.
func (p *Provider) AcceptableAnswers(teamA, teamB string) []string {
	if players, ok := transfers[teamA+"-"+teamB]; ok {
		return players
	}
	if players, ok := transfers[teamB+"-"+teamA]; ok {
		return players
	}
	return nil
}

// TeamRoster returns a club's well-known players, or nil for unknown clubs.
func (p *Provider) TeamRoster(team string) []string {
	return rosters[team]
}

// DecoyAnswers returns the pool of wrong answers available to the bot.
func (p *Provider) DecoyAnswers() []string {
	return decoys
}
