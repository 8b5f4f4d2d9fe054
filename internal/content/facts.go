// Package content holds the static educational content served by the
// API: a catalog of economics fun facts shown on the landing page.
package content

import "math/rand"

// Facts is a deduplicated, shuffled fact catalog. The shuffle happens
// once at construction with an injected rand source so callers control
// determinism.
type Facts struct {
	facts []string
}

// NewFacts dedupes the catalog (preserving first occurrence) and
// shuffles it with rng.
func NewFacts(catalog []string, rng *rand.Rand) *Facts {
	seen := make(map[string]struct{}, len(catalog))
	deduped := make([]string, 0, len(catalog))
	for _, fact := range catalog {
		if _, ok := seen[fact]; ok {
			continue
		}
		seen[fact] = struct{}{}
		deduped = append(deduped, fact)
	}

	rng.Shuffle(len(deduped), func(i, j int) {
		deduped[i], deduped[j] = deduped[j], deduped[i]
	})

	return &Facts{facts: deduped}
}

// All returns the shuffled catalog. The returned slice is shared;
// callers must not mutate it.
func (f *Facts) All() []string { return f.facts }

// Len reports the catalog size after deduplication.
func (f *Facts) Len() int { return len(f.facts) }

// DefaultCatalog is the stock set of facts. A couple of entries repeat
// upstream sources verbatim, so construction dedupes.
var DefaultCatalog = []string{
	"The average £1 coin remains in circulation for about 30 years.",
	"GDP was created in the 1930s to measure economic recovery after the Great Depression.",
	"Some countries have negative interest rates, meaning banks charge you to save money.",
	"China has lifted more than 800 million people out of poverty in the last 40 years.",
	"A country can grow its GDP even if people feel poorer – for example, if prices rise faster than wages.",
	"Roughly 1 in 3 UK adults have less than £1,000 in savings for emergencies.",
	"Hyperinflation in Zimbabwe once made prices double roughly every 24 hours.",
	"Most day traders lose money, while simple index funds quietly grow in the background.",
	"Gold has been used as money for over 3,000 years.",
	"The amount of global debt is higher than the amount of global wealth.",
	"A £5 note today buys you less than it did 10 years ago — that’s inflation quietly at work.",
	"The stock market has gone up in about 3 out of every 4 years historically.",
	"The world produces more than $100 trillion worth of goods and services every year.",
	"If you invested in every stock in the world, you would own over 40,000 companies.",
	"There are more mobile phones in the world than bank accounts.",
	"Salt was once so valuable that Roman soldiers were partly paid with it.",
	"There are more cryptocurrencies today than the number of fiat currencies.",
	"One country printed a 100 trillion dollar banknote — the highest ever seen.",
	"McDonald’s makes more money from property than it does from food.",
	"The first stock market was established in Amsterdam in 1602.",
	"Over long periods, missing just the 10 best days in the stock market can cut your returns in half.",
	"If you invest £1 a day from age 18, you could retire with more than someone who invests £200 a month starting at 35.",
	"The world’s most expensive stock costs over £400,000 per share (Berkshire Hathaway).",
	"Pension funds are some of the biggest investors in the world — they quietly own huge parts of major companies.",
	"If you bought £100 of Bitcoin in 2010, it would be worth millions today.",
	"Roughly half of adults worldwide have no investments beyond cash or a basic bank account.",
	"Over long periods, stocks have historically beaten inflation by about 4–7% per year on average.",
	"People underestimate their monthly spending by as much as 40%.",
	"In 2006, Blockbuster could have bought Netflix for $50 million. They said no. Netflix is now worth billions.",
	"Most of the world’s wealth is owned by less than 1% of the population.",
	"A man once paid 10,000 bitcoins for two pizzas. Today that bitcoin would be worth hundreds of millions.",
	"Apple is worth more than the total GDP of most countries.",
	"Index funds were once mocked on Wall Street; now even billionaire investors recommend them.",
	"Economists once used the price of Big Macs to compare currencies around the world.",
	"Inflation of just 3% halves the value of money in about 24 years.",
	"The Great Depression reduced world trade by nearly 66% — people simply stopped buying.",
	"The world’s first recorded financial crisis happened in 1637 because of tulip flowers.",
	"At one point, oil prices went below zero — sellers paid buyers to take oil.",
	"The amount of global debt is higher than the amount of global wealth.",
	"Airports make a large amount of their profit from shops, not flights.",
	"More than 90% of the world’s money exists only in digital form.",
	"If you invest £200/month at 7% return, you could end up with around £240,000 after 30 years.",
	"Supermarkets place essential items like milk at the back so you walk past everything else.",
	"A £3 coffee every weekday adds up to over £700 a year.",
	"Over 60% of workers in the world are in the informal economy, with no formal contract or pension.",
	"The UK’s inflation peaked above 20% in the mid-1970s, heavily eroding savings.",
	"In Japan, interest rates were close to 0% for years, which made saving in cash almost pointless.",
	"There are more £50 notes in circulation than people in the UK.",
	"Most lottery winners go broke within five years.",
	"More than 70% of global stock trades are made by automated algorithms.",
	"The US stock market alone makes up about half of the total value of all stocks in the world.",
	"Sweden is so cashless that many shops no longer accept physical money at all.",
	"The word 'economics' comes from the Greek 'oikonomikos', meaning 'household management'.",
}
