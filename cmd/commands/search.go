package commands

import (
	"encoding/json"

	"github.com/ncobase/talentsearch/talent"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type searchFlags struct {
	companyIDs        []int64
	workRoles         []string
	workLanguages     []string
	workExperience    []string
	workLocations     []string
	workAuthorization []string
	presentedTalents  []int64
	epoch             int64
	index             string
}

func (f *searchFlags) register(fs *pflag.FlagSet) {
	fs.Int64SliceVar(&f.companyIDs, "company-id", nil, "ids of the searching company")
	fs.StringSliceVar(&f.workRoles, "work-roles", nil, "work roles to match")
	fs.StringSliceVar(&f.workLanguages, "work-languages", nil, "work languages to match")
	fs.StringSliceVar(&f.workExperience, "work-experience", nil, "experience levels to match")
	fs.StringSliceVar(&f.workLocations, "work-locations", nil, "work locations to match")
	fs.StringSliceVar(&f.workAuthorization, "work-authorization", nil, "work authorizations to match")
	fs.Int64SliceVar(&f.presentedTalents, "presented-talents", nil, "talent ids presented to the company")
	fs.Int64Var(&f.epoch, "epoch", 0, "evaluation time in unix seconds, defaults to now")
	fs.StringVar(&f.index, "index", "", "search this index instead of the configured ones")
}

// params converts the flags that were set into search parameters.
func (f *searchFlags) params(fs *pflag.FlagSet) talent.Params {
	p := talent.Params{}
	if len(f.companyIDs) > 0 {
		p[talent.ParamCompanyID] = f.companyIDs
	}
	for key, v := range map[string][]string{
		talent.ParamWorkRoles:         f.workRoles,
		talent.ParamWorkLanguages:     f.workLanguages,
		talent.ParamWorkExperience:    f.workExperience,
		talent.ParamWorkLocations:     f.workLocations,
		talent.ParamWorkAuthorization: f.workAuthorization,
	} {
		if len(v) > 0 {
			p[key] = v
		}
	}
	if len(f.presentedTalents) > 0 {
		p[talent.ParamPresentedTalents] = f.presentedTalents
	}
	if fs.Changed("epoch") {
		p[talent.ParamEpoch] = f.epoch
	}
	if f.index != "" {
		p[talent.ParamIndex] = f.index
	}
	return p
}

// NewSearchCommand creates the one-shot search command
func NewSearchCommand(configFile *string) *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run one talent search and print the matching ids as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(*configFile)
			if err != nil {
				return err
			}
			defer a.Close()

			ids := a.searcher.Search(cmd.Context(), a.cfg.Data.Search.DefaultIndexes, flags.params(cmd.Flags()))
			return json.NewEncoder(cmd.OutOrStdout()).Encode(ids)
		},
	}
	flags.register(cmd.Flags())
	return cmd
}
