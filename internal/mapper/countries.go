package mapper

import "strings"

// countryNames maps ISO 3166-1 alpha-2 codes to the Portuguese names used by
// the partner's country list. AN is kept for listings that still carry the
// withdrawn Netherlands Antilles code.
var countryNames = map[string]string{
	"AD": "andorra",
	"AE": "eau",
	"AF": "afeganistão",
	"AG": "antígua e barbuda",
	"AI": "anguilla",
	"AL": "albânia",
	"AM": "arménia",
	"AN": "antilhas holandesas",
	"AO": "angola",
	"AQ": "antártica",
	"AR": "argentina",
	"AS": "samoa americana",
	"AT": "áustria",
	"AU": "austrália",
	"AW": "aruba",
	"AX": "ilhas åland",
	"AZ": "azerbaijão",
	"BA": "bósnia e herzegovina",
	"BB": "barbados",
	"BD": "bangladesh",
	"BE": "bélgica",
	"BF": "burkina faso",
	"BG": "bulgária",
	"BH": "bahrein",
	"BI": "burundi",
	"BJ": "benim",
	"BL": "são bartolomeu",
	"BM": "bermudas",
	"BN": "brunei",
	"BO": "bolívia",
	"BQ": "países baixos caribenhos",
	"BR": "brasil",
	"BS": "bahamas",
	"BT": "butão",
	"BV": "ilha bouvet",
	"BW": "botswana",
	"BY": "bielorrússia",
	"BZ": "belize",
	"CA": "canadá",
	"CC": "ilhas cocos (keeling)",
	"CD": "república democrática do congo",
	"CF": "república centro-africana",
	"CG": "república do congo",
	"CH": "suiça",
	"CI": "costa do marfim",
	"CK": "ilhas cook",
	"CL": "chile",
	"CM": "camarões",
	"CN": "china",
	"CO": "colômbia",
	"CR": "costa rica",
	"CU": "cuba",
	"CV": "cabo verde",
	"CW": "curaçau",
	"CX": "ilha do natal",
	"CY": "chipre",
	"CZ": "rep. checa",
	"DE": "alemanha",
	"DJ": "djibouti",
	"DK": "dinamarca",
	"DM": "dominica",
	"DO": "república dominicana",
	"DZ": "argélia",
	"EC": "equador",
	"EE": "estónia",
	"EG": "egipto",
	"EH": "saara ocidental",
	"ER": "eritreia",
	"ES": "espanha",
	"ET": "etiópia",
	"FI": "finlândia",
	"FJ": "fiji",
	"FK": "ilhas malvinas",
	"FM": "micronésia",
	"FO": "ilhas feroé",
	"FR": "frança",
	"GA": "gabão",
	"GB": "reino unido",
	"GD": "granada",
	"GE": "geórgia",
	"GF": "guiana fr.",
	"GG": "guernsey",
	"GH": "gana",
	"GI": "gibraltar",
	"GL": "gronelândia",
	"GM": "gâmbia",
	"GN": "guiné",
	"GP": "guadalupe",
	"GQ": "guiné equatorial",
	"GR": "grécia",
	"GS": "ilhas geórgia do sul e sandwich do sul",
	"GT": "guatemala",
	"GU": "guam",
	"GW": "guiné-bissau",
	"GY": "guiana",
	"HK": "hong kong",
	"HM": "ilha heard e ilhas mcdonald",
	"HN": "honduras",
	"HR": "croácia",
	"HT": "haiti",
	"HU": "hungria",
	"ID": "indonésia",
	"IE": "irlanda",
	"IL": "israel",
	"IM": "ilha de man",
	"IN": "índia",
	"IO": "território britânico do oceano índico",
	"IQ": "iraque",
	"IR": "irão",
	"IS": "islândia",
	"IT": "itália",
	"JE": "jersey",
	"JM": "jamaica",
	"JO": "jordânia",
	"JP": "japão",
	"KE": "quénia",
	"KG": "quirguistão",
	"KH": "camboja",
	"KI": "kiribati",
	"KM": "comores",
	"KN": "são cristóvão e neves",
	"KP": "coreia do norte",
	"KR": "coreia do sul",
	"KW": "kuwait",
	"KY": "cayman islands",
	"KZ": "cazaquistão",
	"LA": "laos",
	"LB": "líbano",
	"LC": "santa lúcia",
	"LI": "liechtenstein",
	"LK": "sri lanka",
	"LR": "libéria",
	"LS": "lesoto",
	"LT": "lituânia",
	"LU": "luxemburgo",
	"LV": "letónia",
	"LY": "líbia",
	"MA": "marrocos",
	"MC": "mónaco",
	"MD": "moldávia",
	"ME": "montenegro",
	"MF": "são martinho",
	"MG": "madagáscar",
	"MH": "ilhas marshall",
	"MK": "macedónia",
	"ML": "mali",
	"MM": "mianmar",
	"MN": "mongólia",
	"MO": "macau",
	"MP": "marianas setentrionais",
	"MQ": "martinica",
	"MR": "mauritânia",
	"MS": "monserrate",
	"MT": "malta",
	"MU": "maurícias",
	"MV": "maldivas",
	"MW": "malawi",
	"MX": "méxico",
	"MY": "malásia",
	"MZ": "moçambique",
	"NA": "namíbia",
	"NC": "nova caledónia",
	"NE": "níger",
	"NF": "ilha norfolk",
	"NG": "nigéria",
	"NI": "nicarágua",
	"NL": "holanda",
	"NO": "noruega",
	"NP": "nepal",
	"NR": "nauru",
	"NU": "niue",
	"NZ": "nova zelândia",
	"OM": "omã",
	"PA": "panamá",
	"PE": "peru",
	"PF": "polinésia francesa",
	"PG": "papua-nova guiné",
	"PH": "filipinas",
	"PK": "paquistão",
	"PL": "polónia",
	"PM": "saint-pierre e miquelon",
	"PN": "pitcairn",
	"PR": "porto rico",
	"PS": "palestina",
	"PT": "portugal",
	"PW": "palau",
	"PY": "paraguai",
	"QA": "qatar",
	"RE": "reunião",
	"RO": "roménia",
	"RS": "sérvia",
	"RU": "rússia",
	"RW": "ruanda",
	"SA": "arábia saudita",
	"SB": "ilhas salomão",
	"SC": "seicheles",
	"SD": "sudão",
	"SE": "suécia",
	"SG": "singapura",
	"SH": "santa helena",
	"SI": "eslovénia",
	"SJ": "svalbard e jan mayen",
	"SK": "eslováquia",
	"SL": "serra leoa",
	"SM": "são marino",
	"SN": "senegal",
	"SO": "somália",
	"SR": "suriname",
	"SS": "sudão do sul",
	"ST": "são tomé and príncipe",
	"SV": "el salvador",
	"SX": "são martinho (países baixos)",
	"SY": "síria",
	"SZ": "suazilândia",
	"TC": "ilhas turcos e caicos",
	"TD": "chade",
	"TF": "territórios franceses do sul",
	"TG": "togo",
	"TH": "tailândia",
	"TJ": "tajiquistão",
	"TK": "toquelau",
	"TL": "timor-leste",
	"TM": "turquemenistão",
	"TN": "tunísia",
	"TO": "tonga",
	"TR": "turquia",
	"TT": "trindade e tobago",
	"TV": "tuvalu",
	"TW": "formosa",
	"TZ": "tanzânia",
	"UA": "ucrânia",
	"UG": "uganda",
	"UM": "ilhas menores distantes dos estados unidos",
	"US": "estados unidos",
	"UY": "uruguai",
	"UZ": "usbequistão",
	"VA": "vaticano",
	"VC": "são vicente e granadinas",
	"VE": "venezuela",
	"VG": "ilhas virgens britânicas",
	"VI": "ilhas virgens",
	"VN": "vietname",
	"VU": "vanuatu",
	"WF": "wallis e futuna",
	"WS": "samoa",
	"YE": "iémen",
	"YT": "mayotte",
	"ZA": "áfrica do sul",
	"ZM": "zâmbia",
	"ZW": "zimbabué",
}

// CountryName returns the canonical Portuguese name for an ISO alpha-2 code.
// Unknown codes are returned unchanged.
func CountryName(code string) string {
	if name, ok := countryNames[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return name
	}
	return code
}
