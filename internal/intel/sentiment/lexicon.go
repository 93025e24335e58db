// internal/intel/sentiment/lexicon.go
package sentiment

// Polarity lexicon tuned for streetwear/social-media vocabulary. Slang terms
// ("fire", "mid", "grail") carry most of the signal in this domain, so they
// sit alongside the general-purpose words.
var positiveWords = map[string]bool{
	"good": true, "great": true, "best": true, "amazing": true, "awesome": true,
	"love": true, "loved": true, "like": true, "beautiful": true, "perfect": true,
	"excellent": true, "fantastic": true, "incredible": true, "dope": true,
	"fresh": true, "clean": true, "crisp": true, "premium": true, "quality": true,
	"fire": true, "heat": true, "grail": true, "grails": true, "hard": true,
	"sick": true, "insane": true, "crazy": true, "wild": true, "iconic": true,
	"legendary": true, "classic": true, "essential": true, "must": true,
	"cop": true, "copped": true, "win": true, "winning": true, "favorite": true,
	"favourite": true, "stunning": true, "smooth": true, "comfy": true,
	"comfortable": true, "soft": true, "durable": true, "underrated": true,
	"slaps": true, "banger": true, "goated": true, "valid": true, "clutch": true,
}

var negativeWords = map[string]bool{
	"bad": true, "worst": true, "terrible": true, "awful": true, "horrible": true,
	"hate": true, "hated": true, "ugly": true, "poor": true, "cheap": true,
	"overpriced": true, "overrated": true, "disappointing": true,
	"disappointed": true, "trash": true, "garbage": true, "mid": true,
	"boring": true, "bland": true, "basic": true, "fake": true, "scam": true,
	"ripoff": true, "flimsy": true, "thin": true, "itchy": true, "shrunk": true,
	"faded": true, "broke": true, "broken": true, "torn": true, "ripped": true,
	"late": true, "slow": true, "rude": true, "refund": true, "return": true,
	"returned": true, "regret": true, "waste": true, "wasted": true, "pass": true,
	"skip": true, "meh": true, "weak": true, "lame": true, "dead": true,
}

// negators flip the polarity of the next lexicon hit within the window.
var negators = map[string]bool{
	"not": true, "no": true, "never": true, "neither": true, "nor": true,
	"isnt": true, "isn't": true, "wasnt": true, "wasn't": true,
	"dont": true, "don't": true, "didnt": true, "didn't": true,
	"wont": true, "won't": true, "cant": true, "can't": true,
	"aint": true, "ain't": true, "nothing": true, "without": true,
}

// intensifiers scale the next lexicon hit.
var intensifiers = map[string]float64{
	"very": 1.5, "so": 1.5, "super": 1.5, "really": 1.5, "extremely": 1.8,
	"absolutely": 1.8, "totally": 1.5, "mad": 1.5, "hella": 1.5, "too": 1.3,
	"pretty": 1.2, "kinda": 0.7, "somewhat": 0.7, "slightly": 0.5,
}
