package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"network-match/internal/domain"
	"network-match/internal/service"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for a member",
	Long: `Issue an HS256 access token accepted by the recommendations API.

Meant for local environments: production tokens come from the identity service.
The secret defaults to $JWT_SECRET and the issuer to $JWT_ISSUER.

Examples:
  matchctl token --member s1
  curl -H "Authorization: Bearer $(matchctl token --member s1)" localhost:8080/recommendations`,
	RunE: runToken,
}

var (
	tokenMember string
	tokenRole   string
	tokenSecret string
	tokenIssuer string
	tokenTTL    time.Duration
)

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringVar(&tokenMember, "member", "", "member id (token subject)")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "", "member role claim (student, alumni, faculty)")
	tokenCmd.Flags().StringVar(&tokenSecret, "secret", os.Getenv("JWT_SECRET"), "HS256 signing secret")
	tokenCmd.Flags().StringVar(&tokenIssuer, "issuer", envOr("JWT_ISSUER", "network-match"), "token issuer")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 15*time.Minute, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("member")
}

func runToken(cmd *cobra.Command, args []string) error {
	if tokenSecret == "" {
		return fmt.Errorf("signing secret required (--secret or JWT_SECRET)")
	}
	tokens := service.NewTokenService(tokenSecret, tokenIssuer, tokenTTL)
	token, err := tokens.IssueAccessToken(domain.Member{ID: tokenMember, Role: domain.Role(tokenRole)})
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
