package contract

// Method surface of the governance token: an ERC20 with vote checkpoints and
// an owner only `mint`.
const TokenABI = `[
	{"type":"constructor","inputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"mint","stateMutability":"nonpayable",
		"inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"delegate","stateMutability":"nonpayable",
		"inputs":[{"name":"delegatee","type":"address"}],"outputs":[]},
	{"type":"function","name":"getVotes","stateMutability":"view",
		"inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getPastVotes","stateMutability":"view",
		"inputs":[{"name":"account","type":"address"},{"name":"blockNumber","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view",
		"inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}
]`

// Method surface of the ballot: proposals are fixed at construction, votes
// spend the voting power the token reported at deployment.
const BallotABI = `[
	{"type":"constructor","stateMutability":"nonpayable",
		"inputs":[{"name":"proposalNames","type":"bytes32[]"},{"name":"_voteToken","type":"address"}]},
	{"type":"function","name":"proposals","stateMutability":"view",
		"inputs":[{"name":"","type":"uint256"}],
		"outputs":[{"name":"name","type":"bytes32"},{"name":"voteCount","type":"uint256"}]},
	{"type":"function","name":"vote","stateMutability":"nonpayable",
		"inputs":[{"name":"proposal","type":"uint256"},{"name":"amount","type":"uint256"}],"outputs":[]}
]`
