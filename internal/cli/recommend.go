package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"network-match/internal/domain"
	"network-match/internal/matching"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Compute recommendations for a member",
	Long: `Compute the ranked recommendations for one member of a snapshot.

Examples:
  matchctl recommend --snapshot net.json --subject s1
  matchctl recommend --snapshot net.json --subject s1 --mentors --limit 5
  matchctl recommend --snapshot net.json --subject s1 -o json`,
	RunE: runRecommend,
}

var (
	recSnapshot string
	recSubject  string
	recLimit    int
	recMentors  bool
)

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringVar(&recSnapshot, "snapshot", "", "path to the JSON snapshot")
	recommendCmd.Flags().StringVar(&recSubject, "subject", "", "member id to recommend for")
	recommendCmd.Flags().IntVar(&recLimit, "limit", matching.DefaultLimit, "maximum number of results")
	recommendCmd.Flags().BoolVar(&recMentors, "mentors", false, "recommend alumni mentors instead of connections")
	_ = recommendCmd.MarkFlagRequired("snapshot")
	_ = recommendCmd.MarkFlagRequired("subject")
}

type recommendOutput struct {
	Algorithm string `json:"algorithm"`
	domain.Recommendation
}

func runRecommend(cmd *cobra.Command, args []string) error {
	if recLimit < 0 {
		return fmt.Errorf("invalid limit %d", recLimit)
	}
	snap, err := loadSnapshot(recSnapshot)
	if err != nil {
		return err
	}
	out, err := recommendFromSnapshot(snap, recSubject, recLimit, recMentors)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), outputFmt, snap, out)
}

func recommendFromSnapshot(snap Snapshot, subjectID string, limit int, mentors bool) (recommendOutput, error) {
	subject, ok := snap.member(subjectID)
	if !ok {
		return recommendOutput{}, fmt.Errorf("member %q not found in snapshot", subjectID)
	}

	signals := snap.profileSignals()
	out := recommendOutput{Algorithm: "connection-matching"}
	if mentors {
		year := snap.ReferenceYear
		if year == 0 {
			year = time.Now().Year()
		}
		out.Algorithm = "mentor-matching"
		out.Recommendation = matching.RecommendMentors(subject, snap.Members, snap.Relationships, signals, limit, year)
	} else {
		out.Recommendation = matching.Recommend(subject, snap.Members, snap.Relationships, signals, limit)
	}
	return out, nil
}

func render(w io.Writer, format string, snap Snapshot, out recommendOutput) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "table", "":
		return renderTable(w, snap, out)
	}
	return fmt.Errorf("unknown output format %q", format)
}

func renderTable(w io.Writer, snap Snapshot, out recommendOutput) error {
	if out.ResultCount == 0 {
		_, err := fmt.Fprintf(w, "%s: %s\n", out.EmptyReason, out.Message)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tMEMBER\tROLE\tSCORE\tSKILLS\tBRANCH\tROLE FIT\tACTIVITY\tWHY")
	for i, r := range out.Results {
		m, _ := snap.member(r.CandidateID)
		name := m.Name
		if name == "" {
			name = r.CandidateID
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
			i+1, name, m.Role, r.Score,
			r.Breakdown.Skill, r.Breakdown.Affiliation, r.Breakdown.Role, r.Breakdown.Activity,
			strings.TrimSpace(matching.JoinExplanation(r.Explanation)),
		)
	}
	return tw.Flush()
}
