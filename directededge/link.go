package directededge


// Link is a directed, typed, weighted edge from `Source` to `Target`.
type Link struct {
	Source string
	Target string
	Weight int
	Type   string
}

func NewLink(source string, target string) Link {
	return Link{
		Source: source,
		Target: target,
	}
}
