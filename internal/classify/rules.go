package classify

// DefaultCategoryRules returns the built-in category table. Order matters:
// earlier rules win over later ones when several keywords occur in the text.
func DefaultCategoryRules() RuleSet {
	return RuleSet{
		{"systematic", "Systematic Theology"},
		{"theology", "Systematic Theology"},
		{"commentary", "Commentary"},
		{"confession", "Confession"},
		{"creed", "Creeds"},
		{"devotional", "Devotional"},
		{"catechism", "Catechism"},
		{"sermon", "Sermons"},
		{"church", "Church History"},
		{"covenant", "Covenant Theology"},
		{"eschatology", "Eschatology"},
		{"christ", "Christology"},
		{"salvation", "Soteriology"},
		{"ethics", "Christian Ethics"},
		{"prayer", "Prayer & Spiritual Growth"},
		{"apologetic", "Apologetics"},
		{"doctrine", "Doctrinal Studies"},
		{"grace", "Grace & Salvation"},
		{"faith", "Faith & Justification"},
		{"worship", "Worship & Liturgy"},
		{"reformation", "Reformation History"},
		{"spiritual", "Spiritual Growth"},
		{"gospel", "Gospel Studies"},
		{"discipleship", "Discipleship"},
	}
}

// DefaultAuthorRules returns the built-in author table, keyed on surnames.
func DefaultAuthorRules() RuleSet {
	return RuleSet{
		{"calvin", "John Calvin"},
		{"luther", "Martin Luther"},
		{"spurgeon", "Charles Spurgeon"},
		{"packer", "J.I. Packer"},
		{"sproul", "R.C. Sproul"},
		{"pink", "A.W. Pink"},
		{"berkhof", "Louis Berkhof"},
		{"bavinck", "Herman Bavinck"},
		{"kuper", "Abraham Kuyper"},
		{"owen", "John Owen"},
		{"watson", "Thomas Watson"},
		{"bunyan", "John Bunyan"},
		{"ferguson", "Sinclair Ferguson"},
		{"macarthur", "John MacArthur"},
		{"lloyd", "Martyn Lloyd-Jones"},
		{"piper", "John Piper"},
		{"ryle", "J.C. Ryle"},
		{"stott", "John Stott"},
		{"carson", "D.A. Carson"},
		{"edwards", "Jonathan Edwards"},
		{"warfield", "B.B. Warfield"},
		{"hodge", "Charles Hodge"},
		{"turretin", "Francis Turretin"},
		{"beza", "Theodore Beza"},
		{"murray", "John Murray"},
		{"vos", "Geerhardus Vos"},
		{"ridderbos", "Herman Ridderbos"},
		{"boston", "Thomas Boston"},
		{"perkins", "William Perkins"},
		{"goodwin", "Thomas Goodwin"},
		{"sibbes", "Richard Sibbes"},
		{"brakel", "Wilhelmus à Brakel"},
		{"gill", "John Gill"},
	}
}
