package errors

// identity
var (
	InvalidMnemonic         = NewError(100, "invalid mnemonic")
	InvalidPrivateKey       = NewError(101, "invalid private key")
	InvalidDerivationPath   = NewError(102, "invalid derivation path")
	SigningKeyNotConfigured = NewError(103, "neither mnemonic nor private key is configured")
)

// network
var (
	UnknownNetwork    = NewError(110, "unknown network")
	InsufficientFunds = NewError(111, "not enough ether")
)

// plan
var (
	NotEnoughProposals      = NewError(120, "not enough proposals provided")
	ProposalNameTooLong     = NewError(121, "proposal name is longer than 32 bytes")
	InvalidProposalName     = NewError(122, "proposal name must not contain zero bytes")
	ProposalIndexOutOfRange = NewError(123, "proposal index out of range")
	NoParticipants          = NewError(124, "at least one participant must be given")
	ContractAddressNotGiven = NewError(125, "contract address must be given to attach")
	InvalidAmount           = NewError(126, "invalid amount")
	InvalidPlan             = NewError(127, "invalid plan")
)

// contract
var (
	BytecodeNotFound     = NewError(130, "descriptor has no bytecode to deploy")
	InvalidArtifact      = NewError(131, "invalid contract artifact")
	ContractCodeNotFound = NewError(132, "no contract code found at address")
	TransactionReverted  = NewError(133, "transaction reverted")
	UnexpectedCallResult = NewError(134, "unexpected contract call result")
)

// storage
var (
	StorageCoreError           = NewError(140, "storage error")
	StorageRecordDoesNotExist  = NewError(141, "record does not exist")
	StorageRecordAlreadyExists = NewError(142, "record already exists")
	UnknownStorageScheme       = NewError(143, "unknown storage scheme")
)
