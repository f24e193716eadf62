// Package reference parses user-supplied issue and pull request references
// and builds the endpoint URLs that resolve them.
//
// Two argument shapes are accepted:
//
//   - owner/repo/NUMBER or owner/repo/N1,N2,N3
//   - a full URL whose path is /owner/repo/issues/N[,...] or
//     /owner/repo/pull/N[,...]
//
// A URL argument carries its own domain, which selects an enterprise-style
// API base (https://{domain}/api/v3) instead of the public one. The domain
// applies to every endpoint URL built from the reference afterwards.
package reference

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// DefaultDomain is the public GitHub host.
const DefaultDomain = "github.com"

// PublicAPIBase is the REST API base for the public host.
const PublicAPIBase = "https://api.github.com"

// PublicRawHost serves raw file content for the public host.
const PublicRawHost = "raw.githubusercontent.com"

// ErrInvalidArgument indicates a reference string that matches neither
// accepted shape.
var ErrInvalidArgument = errors.New("reference: invalid argument")

// Kind selects the endpoint family a reference resolves against.
type Kind string

const (
	KindIssue Kind = "issue"
	KindPull  Kind = "pull"
)

// Reference identifies one or more issues or pull requests on a host.
// Numbers keep the order and duplicates of the original argument.
type Reference struct {
	Owner   string
	Repo    string
	Numbers []int
	Domain  string
	Kind    Kind
}

// shortForm matches owner/repo/N[,N...]. The number segment is restricted
// to digits and commas.
var shortForm = regexp.MustCompile(`^([^/]+)/([^/]+)/([0-9][0-9,]*)$`)

// Parse turns an argument string into a Reference. The kind parameter is
// the caller's endpoint family; a URL argument's path segment ("issues" or
// "pull") overrides it.
func Parse(arg string, kind Kind) (*Reference, error) {
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		if ref := parseURL(arg); ref != nil {
			return ref, nil
		}
		return nil, invalidArgument(arg)
	}

	m := shortForm.FindStringSubmatch(arg)
	if m == nil {
		return nil, invalidArgument(arg)
	}
	numbers := parseNumbers(m[3])
	if len(numbers) == 0 {
		return nil, invalidArgument(arg)
	}

	return &Reference{
		Owner:   m[1],
		Repo:    m[2],
		Numbers: numbers,
		Domain:  DefaultDomain,
		Kind:    kind,
	}, nil
}

// parseURL handles the full-URL form. Returns nil when the URL does not
// name an issue or pull request.
func parseURL(arg string) *Reference {
	u, err := url.Parse(arg)
	if err != nil || u.Host == "" {
		return nil
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 4 {
		return nil
	}

	var kind Kind
	switch parts[2] {
	case "issues":
		kind = KindIssue
	case "pull":
		kind = KindPull
	default:
		return nil
	}

	numbers := parseNumbers(parts[3])
	if len(numbers) == 0 {
		return nil
	}

	return &Reference{
		Owner:   parts[0],
		Repo:    parts[1],
		Numbers: numbers,
		Domain:  u.Host,
		Kind:    kind,
	}
}

// parseNumbers splits a comma-separated number segment, keeping only
// fully-numeric positive tokens in their original order.
func parseNumbers(s string) []int {
	var numbers []int
	for _, tok := range strings.Split(s, ",") {
		n, err := strconv.Atoi(tok)
		if err != nil || n < 1 {
			continue
		}
		numbers = append(numbers, n)
	}
	return numbers
}

func invalidArgument(arg string) error {
	return fmt.Errorf(
		"%w: reference must be owner/repo/NUMBER or a full GitHub issue/pull URL, received %q",
		ErrInvalidArgument, arg,
	)
}

// APIBase returns the REST API base URL for a domain.
func APIBase(domain string) string {
	if domain == DefaultDomain {
		return PublicAPIBase
	}
	return fmt.Sprintf("https://%s/api/v3", domain)
}

// ContentsAPIURL builds a contents-API URL for a file at a git ref.
func ContentsAPIURL(domain, owner, repo, path, ref string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s",
		APIBase(domain), owner, repo, path, url.QueryEscape(ref))
}

// RawContentURL builds the raw-content URL for a file at a git ref. The
// public host serves raw content from a dedicated domain; enterprise hosts
// use a /raw/ path on the primary domain.
func RawContentURL(domain, owner, repo, ref, path string) string {
	if domain == DefaultDomain {
		return fmt.Sprintf("https://%s/%s/%s/%s/%s", PublicRawHost, owner, repo, ref, path)
	}
	return fmt.Sprintf("https://%s/raw/%s/%s/%s/%s", domain, owner, repo, ref, path)
}

// APIBaseURL returns the API base for the reference's domain.
func (r *Reference) APIBaseURL() string {
	return APIBase(r.Domain)
}

// APIURL builds the fetch endpoint for one number, using the pulls
// endpoint family for pull references.
func (r *Reference) APIURL(number int) string {
	family := "issues"
	if r.Kind == KindPull {
		family = "pulls"
	}
	return fmt.Sprintf("%s/repos/%s/%s/%s/%d", r.APIBaseURL(), r.Owner, r.Repo, family, number)
}

// CommentsURL builds the paginated comments endpoint for one number.
// Comments for both issues and pull requests live under the issues family.
func (r *Reference) CommentsURL(number int) string {
	return fmt.Sprintf("%s/repos/%s/%s/issues/%d/comments?per_page=100",
		r.APIBaseURL(), r.Owner, r.Repo, number)
}

// DiffURL builds the unified-diff endpoint for a pull request.
func (r *Reference) DiffURL(number int) string {
	return fmt.Sprintf("%s/repos/%s/%s/pulls/%d.diff", r.APIBaseURL(), r.Owner, r.Repo, number)
}

// HTMLURL builds the public-facing web URL for one number. The domain of
// the original argument is preserved.
func (r *Reference) HTMLURL(number int) string {
	segment := "issues"
	if r.Kind == KindPull {
		segment = "pull"
	}
	return fmt.Sprintf("https://%s/%s/%s/%s/%d", r.Domain, r.Owner, r.Repo, segment, number)
}
