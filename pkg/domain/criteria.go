package domain

// Criterion identifies a user-selectable relevance criterion
type Criterion string

// known criteria. only trending, innovation and expertise affect the score,
// the rest are accepted and shown to the user.
const (
	CriterionRelevance    Criterion = "relevance"
	CriterionRecency      Criterion = "recency"
	CriterionAuthority    Criterion = "authority"
	CriterionEngagement   Criterion = "engagement"
	CriterionTrending     Criterion = "trending"
	CriterionExpertise    Criterion = "expertise"
	CriterionInnovation   Criterion = "innovation"
	CriterionMarketImpact Criterion = "market_impact"
)

// CriterionInfo describes a criterion for display
type CriterionInfo struct {
	ID          Criterion `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

var allCriteria = []CriterionInfo{
	{ID: CriterionRelevance, Name: "Content Relevance", Description: "How closely the content matches your industry focus"},
	{ID: CriterionRecency, Name: "Recency", Description: "How recent the article is (newer is better)"},
	{ID: CriterionAuthority, Name: "Source Authority", Description: "Credibility and reputation of the source"},
	{ID: CriterionEngagement, Name: "Engagement Potential", Description: "Likelihood to generate discussion or interest"},
	{ID: CriterionTrending, Name: "Trending Topics", Description: "Articles covering currently trending topics"},
	{ID: CriterionExpertise, Name: "Expert Analysis", Description: "Articles with expert opinions or analysis"},
	{ID: CriterionInnovation, Name: "Innovation Focus", Description: "Articles about new technologies or methodologies"},
	{ID: CriterionMarketImpact, Name: "Market Impact", Description: "Potential impact on markets or business"},
}

// AllCriteria returns every known criterion in display order
func AllCriteria() []CriterionInfo {
	res := make([]CriterionInfo, len(allCriteria))
	copy(res, allCriteria)
	return res
}

// Criteria is a set of selected criteria
type Criteria map[Criterion]struct{}

// NewCriteria makes a set from a list of identifiers, duplicates collapse
func NewCriteria(ids ...string) Criteria {
	res := make(Criteria, len(ids))
	for _, id := range ids {
		res[Criterion(id)] = struct{}{}
	}
	return res
}

// Has reports whether the criterion is selected
func (c Criteria) Has(id Criterion) bool {
	_, ok := c[id]
	return ok
}

// Len returns the number of selected criteria
func (c Criteria) Len() int {
	return len(c)
}
