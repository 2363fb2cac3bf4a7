package recognize

// Compact gazetteers used by the rules recognizer. These are evidence
// boosters, not exhaustive lists: a capitalized token outside the lists is
// still accepted at a lower score.

var givenNameList = []string{
	"james", "mary", "john", "patricia", "robert", "jennifer", "michael",
	"linda", "william", "elizabeth", "david", "barbara", "richard", "susan",
	"joseph", "jessica", "thomas", "sarah", "charles", "karen", "christopher",
	"lisa", "daniel", "nancy", "matthew", "betty", "anthony", "margaret",
	"mark", "sandra", "donald", "ashley", "steven", "kimberly", "paul",
	"emily", "andrew", "donna", "joshua", "michelle", "kenneth", "carol",
	"kevin", "amanda", "brian", "melissa", "george", "deborah", "timothy",
	"stephanie", "ronald", "rebecca", "jason", "sharon", "edward", "laura",
	"jeffrey", "cynthia", "ryan", "kathleen", "jacob", "amy", "gary",
	"angela", "nicholas", "anna", "eric", "brenda", "jonathan", "pamela",
	"stephen", "emma", "larry", "nicole", "justin", "helen", "scott",
	"samantha", "brandon", "katherine", "benjamin", "christine", "samuel",
	"debra", "gregory", "rachel", "alexander", "carolyn", "frank", "janet",
	"patrick", "catherine", "raymond", "maria", "jack", "heather", "dennis",
	"diane", "jerry", "ruth", "tyler", "julie", "aaron", "olivia", "jane",
	"alice", "grace", "peter", "henry", "rose", "walter", "judith",
}

var surnameList = []string{
	"smith", "johnson", "williams", "brown", "jones", "garcia", "miller",
	"davis", "rodriguez", "martinez", "hernandez", "lopez", "gonzalez",
	"wilson", "anderson", "thomas", "taylor", "moore", "jackson", "martin",
	"lee", "perez", "thompson", "white", "harris", "sanchez", "clark",
	"ramirez", "lewis", "robinson", "walker", "young", "allen", "king",
	"wright", "scott", "torres", "nguyen", "hill", "flores", "green",
	"adams", "nelson", "baker", "hall", "rivera", "campbell", "mitchell",
	"carter", "roberts", "gomez", "phillips", "evans", "turner", "diaz",
	"parker", "cruz", "edwards", "collins", "reyes", "stewart", "morris",
	"morales", "murphy", "cook", "rogers", "gutierrez", "ortiz", "morgan",
	"cooper", "peterson", "bailey", "reed", "kelly", "howard", "ramos",
	"kim", "cox", "ward", "richardson", "watson", "brooks", "chavez",
	"wood", "james", "bennett", "gray", "mendoza", "ruiz", "hughes",
	"price", "alvarez", "castillo", "sanders", "patel", "myers", "long",
	"ross", "foster", "jimenez", "doe",
}

// stopwordList suppresses capitalized tokens that commonly start sentences
// or appear in structured values but are never person names.
var stopwordList = []string{
	"the", "this", "that", "these", "those", "a", "an", "and", "or", "but",
	"if", "then", "when", "where", "how", "why", "what", "who", "which",
	"contact", "call", "email", "phone", "please", "dear", "hello", "hi",
	"thanks", "thank", "regards", "sincerely", "from", "to", "for", "with",
	"not", "new", "old", "inc", "llc", "ltd", "corp", "company", "street",
	"avenue", "road", "drive", "lane", "city", "state", "country", "january",
	"february", "march", "april", "may", "june", "july", "august",
	"september", "october", "november", "december", "monday", "tuesday",
	"wednesday", "thursday", "friday", "saturday", "sunday", "north",
	"south", "east", "west", "mr", "mrs", "ms", "dr", "prof",
}
