package model

// RuleError is a business rule refusal. Msg is shown to the client as is,
// so it is written in French like the rest of the API messages.
type RuleError struct {
	Msg string
}

func (e *RuleError) Error() string { return e.Msg }

func rule(msg string) *RuleError { return &RuleError{Msg: msg} }

var (
	ErrMariageDejaValide      = rule("Ce mariage est déjà validé")
	ErrMariageAnnule          = rule("Ce mariage est annulé")
	ErrMariageVerrouille      = rule("Impossible de modifier un mariage validé")
	ErrMariageNonValide       = rule("Le mariage doit être validé avant de générer un acte")
	ErrMariageAvecActe        = rule("Impossible de supprimer un mariage ayant un acte")
	ErrMariageSuppression     = rule("Impossible de supprimer un mariage validé")
	ErrMariageDeplacementActe = rule("Impossible de changer la mairie d'un mariage ayant un acte")
	ErrActeExiste             = rule("Un acte existe déjà pour ce mariage")
	ErrActeDejaValide         = rule("Cet acte est déjà validé")
	ErrActeAnnule             = rule("Cet acte est annulé")
	ErrActeNonValide          = rule("L'acte doit être validé avant d'être imprimé")
	ErrMairieRequise          = rule("Veuillez spécifier une mairie")
	ErrStatutInvalide         = rule("Statut invalide")
	ErrStatutReserve          = rule("Seul le super administrateur peut modifier le statut d'un mariage")
)

// Geography and account refusals.
var (
	ErrVilleCodeExiste        = rule("Ce code de ville existe déjà")
	ErrVilleNonVide           = rule("Impossible de supprimer cette ville car elle contient des arrondissements")
	ErrVilleInconnue          = rule("La ville spécifiée n'existe pas")
	ErrArrondissementNonVide  = rule("Impossible de supprimer cet arrondissement car il contient des mairies")
	ErrArrondissementInconnu  = rule("L'arrondissement spécifié n'existe pas")
	ErrMairieCodeExiste       = rule("Ce code de mairie existe déjà")
	ErrMairieAvecUtilisateurs = rule("Impossible de supprimer cette mairie car elle contient des utilisateurs")
	ErrMairieAvecMariages     = rule("Impossible de supprimer cette mairie car elle contient des mariages")
	ErrMairieInconnue         = rule("La mairie spécifiée n'existe pas")
	ErrEmailExiste            = rule("Cet email est déjà utilisé")
	ErrRoleNonAutorise        = rule("Vous ne pouvez attribuer que les rôles agent ou consultation")
	ErrSuperAdminSansMairie   = rule("Un super administrateur ne peut pas être rattaché à une mairie")
	ErrSuppressionSoiMeme     = rule("Vous ne pouvez pas supprimer votre propre compte")
	ErrStatutSoiMeme          = rule("Vous ne pouvez pas modifier votre propre statut")
	ErrMotDePasseIncorrect    = rule("Le mot de passe actuel est incorrect")
)
