package charfix

// defaultMojibake maps UTF-8-decoded-as-Latin-1 byte sequences back to the
// characters they originally encoded. The entries cover the German and
// Romance characters the source datasets are known to corrupt.
var defaultMojibake = map[string]string{
	"Ã¤": "ä",
	"Ã": "Ä",
	"Ã¶": "ö",
	"Ã": "Ö",
	"Ã¼": "ü",
	"Ã": "Ü",
	"ÃŸ": "ß",
	"Ã": "ß",
	"Ã©": "é",
	"Ã¨": "è",
	"Ã¡": "á",
	"Ã ": "à",
	"Ã­": "í",
	"Ã³": "ó",
	"Ãº": "ú",
}

// defaultSlovak restores Slovak place names whose diacritics were lost to a
// broken code page. Keys are whole phrases observed in the source datasets;
// the underlying single-character substitutions (~ for ň, ` for š, } for ž)
// are too ambiguous to apply outside a known phrase.
var defaultSlovak = map[string]string{
	"Koaice":                "Košice",
	"Spiaskï¿½ Novï¿½ Ves": "Spišská Nová Ves",
	"Ke~marok":              "Kežmarok",
	"Podolï¿½nec":           "Podolínec",
	"}diarsky":              "Ždiarsky",
	"Levo\ra":               "Levoča",
	"Starï¿½ =ubovHa":       "Stará Ľubovňa",
	"Preaov":                "Prešov",
	"=udovï¿½":              "Ľudový",
	"`aria":                 "Šária",
	"=ubovHa":               "Ľubovňa",
	"Jarabinskï¿½":          "Jarabinský",
	"Chme>nica":             "Chmeľnica",
	"Ro~Hava":               "Rožňava",
	"Krï¿½sna Hï¿½rka":      "Krásna Hôrka",
	"Humennï¿½":             "Humenné",
	"`trbskï¿½":             "Štrbské",
	"Liptovskï¿½ Tepli\rka": "Liptovská Teplička",
	"Spiaskï¿½ Sobota":      "Spišská Sobota",
	"Spiaskï¿½ Podhradie":   "Spišské Podhradie",
	"Markuaovce":            "Markušovce",
	"Spiaskï¿½ `tvrtok":     "Spišský Štvrtok",
	"Al~bety":               "Alžbety",
	"`imona a Jï¿½du":       "Šimona a Júdu",
	"`tï¿½tnik":             "Štítnik",
	"Jasovskï¿½":            "Jasovská",
	"`aris":                 "Šariš",
	"Kapuaany":              "Kapušany",
	"Ko~any":                "Kožany",
	"Ladomirovï¿½":          "Ladomirová",
	"Vyanï¿½ Komï¿½rnik":    "Vyšný Komárnik",
	"Bodru~al":              "Bodružal",
	"Ni~nï¿½ Komï¿½rnik":    "Nižný Komárnik",
	"Prï¿½kra":              "Príkra",
	"Miro>a":                "Miroľa",
	"Krajnï¿½ \fierno":      "Krajné Čierno",
	"`emetkovce":            "Šemetkovce",
	"Vï¿½chodnï¿½":          "Východné",
	"Uli\rskï¿½ Krivï¿½":    "Uličské Krivé",
	"Kalnï¿½ Roztoka":       "Kalná Roztoka",
	"Hrabovï¿½ Roztoka":     "Hrabová Roztoka",
	"Ruskï¿½ Bystrï¿½":      "Ruské Bystré",
	"\fi\rava":              "Čičava",
	"Svï¿½tï¿½ Jur":         "Svätý Jur",
	"Devï¿½n":               "Devín",
	"Zï¿½horie":             "Záhorie",
	"`aatï¿½n":              "Šaštín",
	"Holï¿½\rsky":           "Holíčsky",
	"\fervenï¿½":            "Červený",
	"Smolenickï¿½":          "Smolenický",
	"Plaveckï¿½":            "Plavecký",
	"Dunajskï¿½":            "Dunajské",
	"Komï¿½rno":             "Komárno",
	"Kolï¿½rovo":            "Kolárovo",
	"Novï¿½ Zï¿½mky":        "Nové Zámky",
	"Mariï¿½nska \re>a":     "Mariánska čeľaď",
	"`tï¿½rovo":             "Štúrovo",
	"\fajkov":               "Čajkov",
	"Topo>\rianky":          "Topoľčianky",
	"MlyHany":               "Mlyňany",
	"Pieaeany":              "Piešťany",
}

// defaultColors standardizes the marker color palette: near-black variants
// collapse to #333333, the red family to #a10001, the green family to
// #005741.
var defaultColors = map[string]string{
	"#000000": "#333333",
	"#7c0000": "#333333",
	"#8f1b11": "#a10001",
	"#aa3524": "#a10001",
	"#9b0101": "#a10001",
	"#a43b2d": "#a10001",
	"#1e523d": "#005741",
	"#1d6b53": "#005741",
	"#005943": "#005741",
}

// defaultAllowed lists the non-ASCII runes that are legitimate in the source
// datasets (German, Romance and Slovak letters). Anything else above ASCII
// that survives repair is reported as suspicious.
const defaultAllowed = "äöüßÄÖÜáéíóúàèñçčďľňôŕšťžýÁÉÍÓÚÝČĎĽŇÔŔŠŤŽâêîûëäőű"
